package main

import (
	"fmt"
	"time"

	"billtrack/internal/entity"
	"billtrack/internal/model"
	"billtrack/pkg/config"
	"billtrack/pkg/database"
	"billtrack/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Error("Failed to load timezone %q: %v", cfg.Timezone, err)
		panic(err)
	}

	if err := seedDatabase(db, loc, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, loc *time.Location, log *logger.Logger) error {
	testUsers := []struct {
		fullname string
		phone    string
		email    string
		password string
	}{
		{"Alice Shrestha", "+9779801000001", "alice@test.com", "password123"},
		{"Bob Tamang", "+9779801000002", "bob@test.com", "password123"},
		{"Charlie Gurung", "+9779801000003", "charlie@test.com", "password123"},
	}

	userIDs := make([]string, 0, len(testUsers))

	for _, userData := range testUsers {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(userData.password), bcrypt.DefaultCost)

		user := &model.UserModel{
			Fullname: userData.fullname,
			Phone:    userData.phone,
			Email:    userData.email,
			Password: string(hashedPassword),
		}

		var existingUser model.UserModel
		result := db.Where("email = ? OR phone = ?", user.Email, user.Phone).First(&existingUser)
		if result.Error == nil {
			log.Info("User %s already exists, skipping", user.Email)
			userIDs = append(userIDs, existingUser.ID)
			continue
		}

		if err := db.Create(user).Error; err != nil {
			log.Error("Failed to create user %s: %v", user.Email, err)
			continue
		}

		log.Info("Created user: %s (%s)", user.Fullname, user.Email)
		userIDs = append(userIDs, user.ID)
	}

	// Bills with due dates spread around today so the next evaluation
	// pass has something to match against every policy.
	today := time.Now().In(loc)
	testBills := []struct {
		title  string
		amount float64
		dueIn  int
		policy entity.ReminderPolicy
		status entity.BillStatus
	}{
		{"Electricity", 42.50, 7, entity.PolicySevenDaysBefore, entity.StatusUnpaid},
		{"Internet", 1200, 3, entity.PolicyThreeDaysBefore, entity.StatusUnpaid},
		{"Water", 350.75, 0, entity.PolicyOnDueDate, entity.StatusUnpaid},
		{"Rent", 25000, 14, entity.PolicySevenDaysBefore, entity.StatusUnpaid},
		{"Phone", 499, -2, entity.PolicyOnDueDate, entity.StatusPaid},
	}

	for i, userID := range userIDs {
		for j, billData := range testBills {
			title := fmt.Sprintf("%s #%d", billData.title, i+1)

			var existingBill model.BillModel
			result := db.Where("user_id = ? AND title = ?", userID, title).First(&existingBill)
			if result.Error == nil {
				log.Info("Bill %s already exists, skipping", title)
				continue
			}

			bill := &model.BillModel{
				UserID:       userID,
				Title:        title,
				Description:  fmt.Sprintf("Seeded bill %d", j+1),
				Amount:       billData.amount,
				DueDate:      today.AddDate(0, 0, billData.dueIn),
				ReminderTime: string(billData.policy),
				Status:       string(billData.status),
			}

			if err := db.Create(bill).Error; err != nil {
				log.Error("Failed to create bill %s: %v", title, err)
				continue
			}

			log.Info("Created bill: %s for user %s", title, userID)
		}
	}

	return nil
}
