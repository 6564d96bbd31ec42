package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/N4171k/45DOC/internal/config"
	"github.com/N4171k/45DOC/internal/database"
	"github.com/N4171k/45DOC/internal/models"
	"github.com/N4171k/45DOC/pkg/logger"
)

func main() {
	email := flag.String("email", "", "email of the account to promote")
	revoke := flag.Bool("revoke", false, "remove admin rights instead")
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "usage: promote_admin -email user@example.com [-revoke]")
		os.Exit(2)
	}

	config.LoadConfig()
	logger.Init(config.AppConfig.Env, config.AppConfig.LogLevel)
	database.Connect()

	var user models.User
	if err := database.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(*email))).First(&user).Error; err != nil {
		log.Fatalf("User with email %s not found: %v", *email, err)
	}

	if err := database.DB.Model(&user).Update("is_admin", !*revoke).Error; err != nil {
		log.Fatalf("Failed to update admin flag: %v", err)
	}

	if *revoke {
		fmt.Printf("Removed admin rights from %s (%s).\n", user.Name, user.Email)
		return
	}
	fmt.Printf("Successfully promoted %s (%s) to admin.\n", user.Name, user.Email)
}
