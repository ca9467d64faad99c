package main

import (
	"context"
	"time"

	models "github.com/AulaWare/aula-backend/pkg/db"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	db, err := gorm.Open(sqlite.Open("data/aula.db"), &gorm.Config{TranslateError: true})
	if err != nil {
		panic("failed to connect to database: " + err.Error())
	}

	ctx := context.Background()

	if err := models.Migrate(db); err != nil {
		panic("failed to migrate database: " + err.Error())
	}

	// Staff catalog entries used to gate teacher provisioning
	catalog := []models.TeacherCatalogEntry{
		{EmployeeNumber: "100234", FullName: "Marta Ruiz", IsActive: true},
		{EmployeeNumber: "100235", FullName: "Jorge Salas", IsActive: true},
		{EmployeeNumber: "100236", FullName: "Elena Prieto", IsActive: false},
	}
	for i := range catalog {
		gorm.G[models.TeacherCatalogEntry](db).Create(ctx, &catalog[i])
	}

	// DUMMY DATA
	fullName := "Marta Ruiz"
	teacherUser := models.UserProfile{
		ID:       "11111111-1111-1111-1111-111111111111",
		Email:    "m.ruiz@aula.example",
		FullName: &fullName,
		Role:     "teacher",
		Meta:     datatypes.JSONMap{"role": "teacher", "employee_number": "100234"},
	}
	gorm.G[models.UserProfile](db).Create(ctx, &teacherUser)

	employeeNumber := "100234"
	gorm.G[models.Teacher](db).Create(ctx, &models.Teacher{
		UserID:         teacherUser.ID,
		EmployeeNumber: &employeeNumber,
	})

	room := models.Room{
		Name:      "Lengua 3B",
		CreatedBy: teacherUser.ID,
		Metadata:  datatypes.JSONMap{"subject": "lengua"},
	}
	gorm.G[models.Room](db).Create(ctx, &room)
	gorm.G[models.RoomMember](db).Create(ctx, &models.RoomMember{
		RoomID:     room.ID,
		UserID:     teacherUser.ID,
		RoleInRoom: "admin",
	})

	message := models.Message{
		RoomID:   room.ID,
		SenderID: teacherUser.ID,
		Content:  "Bienvenidos al curso",
	}
	gorm.G[models.Message](db).Create(ctx, &message)
	now := time.Now()
	db.Model(&models.Room{}).Where("id = ?", room.ID).Updates(map[string]any{
		"last_message":    message.Content,
		"last_message_at": now,
	})

	survey := models.Survey{
		RoomID:    room.ID,
		Title:     "Valora la clase de hoy",
		CreatedBy: teacherUser.ID,
		IsActive:  true,
		Metadata:  datatypes.JSONMap{},
	}
	gorm.G[models.Survey](db).Create(ctx, &survey)
	gorm.G[models.SurveyQuestion](db).Create(ctx, &models.SurveyQuestion{
		SurveyID:     survey.ID,
		QuestionText: "How was today's lesson?",
		QuestionType: "rating",
		Options:      datatypes.JSON([]byte("[]")),
		Ordinal:      0,
	})

	seeded, err := gorm.G[models.Room](db).Where("id = ?", room.ID).First(ctx)
	if err != nil {
		panic("seed verification failed: " + err.Error())
	}
	println(seeded.ID, seeded.Name, seeded.CreatedBy)
}
