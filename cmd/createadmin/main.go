package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/njprem/Lombok_Tourism_BackEnd/internal/repository/postgres"
	"github.com/njprem/Lombok_Tourism_BackEnd/internal/service"
	"github.com/njprem/Lombok_Tourism_BackEnd/internal/util"
)

// createadmin registers a staff account. The password is read from
// CREATEADMIN_PASSWORD or, when unset, from the first line of stdin.
func main() {
	_ = godotenv.Load()

	email := flag.String("email", "", "staff email address")
	name := flag.String("name", "", "full name (optional)")
	dsn := flag.String("database-url", os.Getenv("DATABASE_URL"), "postgres connection string")
	migrate := flag.Bool("migrate", true, "apply pending migrations first")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if strings.TrimSpace(*email) == "" || *dsn == "" {
		flag.Usage()
		os.Exit(2)
	}

	password := os.Getenv("CREATEADMIN_PASSWORD")
	if password == "" {
		fmt.Fprint(os.Stderr, "password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			log.WithError(err).Fatal("read password")
		}
		password = strings.TrimRight(line, "\r\n")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.New(*dsn, postgres.Options{MaxOpenConns: 2})
	if err != nil {
		log.WithError(err).Fatal("connect database")
	}
	defer db.Close()

	if *migrate {
		if _, err := postgres.Migrate(ctx, db); err != nil {
			log.WithError(err).Fatal("migrate")
		}
	}

	var fullName *string
	if strings.TrimSpace(*name) != "" {
		fullName = name
	}

	// The token manager is unused here; CreateStaff never issues tokens.
	accounts := service.NewAccountService(postgres.NewAccountRepo(db), util.NewJWTManager("unused", time.Minute))
	account, err := accounts.CreateStaff(ctx, *email, password, fullName)
	if err != nil {
		log.WithError(err).Fatal("create staff account")
	}
	log.WithFields(logrus.Fields{"id": account.ID, "email": account.Email}).Info("staff account created")
}
