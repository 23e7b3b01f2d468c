package main

import (
	"log"

	"stayinn/internal/config"
	"stayinn/internal/database"
	"stayinn/internal/domain"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("level=info msg=no .env file loaded err=%v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Hotel{},
		&domain.RoomInventory{},
		&domain.Booking{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data in FK-safe order
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM room_inventories")
	db.Exec("DELETE FROM hotels")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")
	mustUser(db, "admin@stayinn.example", "admin123", "Platform Admin", domain.RoleAdmin)
	owner1 := mustUser(db, "rohit@stayinn.example", "owner123", "Rohit Mehta", domain.RoleHotelOwner)
	owner2 := mustUser(db, "anita@stayinn.example", "owner123", "Anita Desai", domain.RoleHotelOwner)
	mustUser(db, "guest@stayinn.example", "guest123", "Demo Guest", domain.RoleGuest)

	log.Println("Creating hotels...")
	hotels := []domain.Hotel{
		{
			OwnerID:     owner1.ID,
			Name:        "StayInn Grand Palace",
			Description: "Heritage property near the old city with courtyard dining.",
			Street:      "12 MG Road",
			City:        "Jaipur",
			State:       "Rajasthan",
			Country:     "India",
			ZipCode:     "302001",
			IsActive:    true,
			Rooms: []domain.RoomInventory{
				{RoomType: domain.RoomSingle, UnitPrice: 1800, TotalUnits: 10, AvailableUnits: 10, MaxOccupancy: 1},
				{RoomType: domain.RoomDouble, UnitPrice: 2500, TotalUnits: 12, AvailableUnits: 12, MaxOccupancy: 2},
				{RoomType: domain.RoomDeluxe, UnitPrice: 4200, TotalUnits: 6, AvailableUnits: 6, MaxOccupancy: 3},
				{RoomType: domain.RoomSuite, UnitPrice: 7500, TotalUnits: 2, AvailableUnits: 2, MaxOccupancy: 4},
			},
		},
		{
			OwnerID:     owner1.ID,
			Name:        "StayInn Lakeside",
			Description: "Quiet rooms overlooking the lake, ten minutes from the station.",
			Street:      "4 Fateh Sagar Road",
			City:        "Udaipur",
			State:       "Rajasthan",
			Country:     "India",
			ZipCode:     "313001",
			IsActive:    true,
			Rooms: []domain.RoomInventory{
				{RoomType: domain.RoomDouble, UnitPrice: 3100, TotalUnits: 8, AvailableUnits: 8, MaxOccupancy: 2},
				{RoomType: domain.RoomSuite, UnitPrice: 9000, TotalUnits: 3, AvailableUnits: 3, MaxOccupancy: 4},
			},
		},
		{
			OwnerID:     owner2.ID,
			Name:        "StayInn Metro Business",
			Description: "Business hotel next to the convention centre.",
			Street:      "88 Ring Road",
			City:        "Bengaluru",
			State:       "Karnataka",
			Country:     "India",
			ZipCode:     "560001",
			CheckInTime: "15:00",
			IsActive:    true,
			Rooms: []domain.RoomInventory{
				{RoomType: domain.RoomSingle, UnitPrice: 2200, TotalUnits: 20, AvailableUnits: 20, MaxOccupancy: 1},
				{RoomType: domain.RoomDouble, UnitPrice: 3400, TotalUnits: 15, AvailableUnits: 15, MaxOccupancy: 2},
				{RoomType: domain.RoomDeluxe, UnitPrice: 5600, TotalUnits: 5, AvailableUnits: 5, MaxOccupancy: 3},
			},
		},
	}
	for i := range hotels {
		if err := db.Create(&hotels[i]).Error; err != nil {
			log.Fatal("seed hotel failed:", err)
		}
	}

	log.Printf("Seed complete: %d users, %d hotels", 4, len(hotels))
}

func mustUser(db *gorm.DB, email, password, name string, role domain.UserRole) *domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("hash failed:", err)
	}
	u := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
	}
	if err := db.Create(u).Error; err != nil {
		log.Fatal("seed user failed:", err)
	}
	return u
}
