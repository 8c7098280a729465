package main

import (
	"log"

	"clubhouse/app/config"
	"clubhouse/app/database"
)

func main() {
	log.Println("Starting manual migration...")

	config.Load()
	db := config.GetDB()
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Migration failed: ", err)
	}

	log.Println("Manual migration completed successfully!")
}
