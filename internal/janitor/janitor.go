package janitor

import (
	"context"
	"fmt"
	"time"

	"github.com/AulaWare/aula-backend/config"
	"github.com/AulaWare/aula-backend/internal/store"
	models "github.com/AulaWare/aula-backend/pkg/db"
	"github.com/AulaWare/aula-backend/pkg/logger"
	"gorm.io/gorm"
)

type Janitor struct {
	cfg              *config.Config
	database         *gorm.DB
	store            *store.Store
	announceNoAction bool
	cancel           context.CancelFunc
}

func NewJanitor(cfg *config.Config, db *gorm.DB, announceNoAction bool) *Janitor {
	return &Janitor{
		cfg:              cfg,
		database:         db,
		store:            store.New(db),
		announceNoAction: announceNoAction,
	}
}

func (jan *Janitor) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	jan.cancel = cancel

	go func() {
		shortTicker := time.NewTicker(jan.cfg.Janitor.ShortCleanInterval)
		defer shortTicker.Stop()
		fullTicker := time.NewTicker(jan.cfg.Janitor.FullCleanInterval)
		defer fullTicker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-shortTicker.C:
				jan.RunShort()
			case <-fullTicker.C:
				jan.RunFull()
			}
		}
	}()
}

func (jan *Janitor) Stop() {
	if jan.cancel != nil {
		jan.cancel()
		jan.cancel = nil
	}
}

func (jan *Janitor) RunShort() {
	logger.Info("Janitor: Running short cleaning sequence.")
	jan.CloseExpiredSurveys()
}

func (jan *Janitor) RunFull() {
	logger.Info("Janitor: Running full cleaning sequence.")
	jan.RunShort()

	jan.DeepCleanDatabase(nil)
}

// DeepCleanDatabase forces gorm to delete all "deleted" entries
func (jan *Janitor) DeepCleanDatabase(deepcleanModels *[]any) {
	if deepcleanModels == nil {
		deepcleanModels = &[]any{
			models.UserProfile{},
			models.Room{},
			models.Survey{},
		}
	}
	for _, deepcleanModel := range *deepcleanModels {
		result := jan.database.Unscoped().Where("deleted_at IS NOT NULL").Delete(deepcleanModel)
		if result.Error != nil {
			logger.Err(fmt.Sprintf("Janitor: Error while deepcleaning model %T: %s", deepcleanModel, result.Error.Error()))
		} else {
			if jan.announceNoAction || result.RowsAffected != 0 {
				logger.Info(fmt.Sprintf("Janitor: Deleted %d rows from model %T", result.RowsAffected, deepcleanModel))
			}
		}
	}
}

// CloseExpiredSurveys deactivates surveys whose end time has passed
func (jan *Janitor) CloseExpiredSurveys() {
	ctx := context.Background()

	closed, err := jan.store.CloseExpiredSurveys(ctx, time.Now())
	if err != nil {
		logger.Err(fmt.Sprintf("Janitor: Error while closing expired surveys: %s", err.Error()))
		return
	}
	if jan.announceNoAction || closed != 0 {
		logger.Info(fmt.Sprintf("Janitor: closed %d expired surveys", closed))
	}
}
