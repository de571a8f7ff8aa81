// Seed prepares the database out of band: schema plus default accounts,
// categories and sample products. Run it before starting the server; it
// is safe to run any number of times.
package main

import (
	"context"
	"log"
	"time"

	"github.com/toggar/toggar-backend/internal/bootstrap"
	"github.com/toggar/toggar-backend/internal/config"
	"github.com/toggar/toggar-backend/internal/db"
	"github.com/toggar/toggar-backend/internal/models"
)

func main() {
	cfg := config.MustLoad()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	gdb, err := db.Open(ctx, cfg.DSN())
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	if err := bootstrap.Migrate(gdb); err != nil {
		log.Fatalf("migrate error: %v", err)
	}
	if err := bootstrap.Seed(ctx, gdb); err != nil {
		log.Fatalf("seed error: %v", err)
	}

	var accounts, categories, products int64
	gdb.WithContext(ctx).Model(&models.Account{}).Count(&accounts)
	gdb.WithContext(ctx).Model(&models.Category{}).Count(&categories)
	gdb.WithContext(ctx).Model(&models.Product{}).Count(&products)

	log.Printf("seed complete: %d accounts, %d categories, %d products", accounts, categories, products)
	log.Printf("default logins: %s / password, %s / password", bootstrap.AdminEmail, bootstrap.UserEmail)
}
