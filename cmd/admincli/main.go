// Command admincli is the maintenance tool for the order backend: it seeds
// admin accounts (the only way admins are created) and prints review-queue
// snapshots without going through the HTTP API.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/olekukonko/tablewriter"

	"c2b-order-backend/internal/auth"
	"c2b-order-backend/internal/config"
	"c2b-order-backend/internal/database"
)

func main() {
	var (
		seedAdmin  = flag.Bool("seed-admin", false, "create or update an admin account")
		username   = flag.String("username", "", "admin username for -seed-admin")
		password   = flag.String("password", "", "admin password for -seed-admin")
		listOrders = flag.Bool("list-orders", false, "print submitted orders")
		listUsers  = flag.Bool("list-users", false, "print users with their submitted orders")
	)
	flag.Parse()

	if !*seedAdmin && !*listOrders && !*listUsers {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.Open(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("failed to connect to MySQL: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}
	client := database.NewClient(db)

	if *seedAdmin {
		if *username == "" || *password == "" {
			log.Fatal("-seed-admin requires -username and -password")
		}
		hash, err := auth.HashPassword(*password)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}
		admin, err := client.UpsertAdmin(*username, hash)
		if err != nil {
			log.Fatalf("failed to seed admin: %v", err)
		}
		fmt.Printf("admin %q ready (id=%d)\n", admin.Username, admin.ID)
	}

	if *listOrders {
		orders, err := client.ListSubmittedOrders()
		if err != nil {
			log.Fatalf("failed to list orders: %v", err)
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("ID", "Order No", "Company", "Qty", "Pay", "Delivery", "Owner Phone", "Created")
		for _, o := range orders {
			orderNo := ""
			if o.OrderNo != nil {
				orderNo = *o.OrderNo
			}
			phone := ""
			if o.User != nil {
				phone = o.User.Phone
			}
			table.Append([]string{
				fmt.Sprintf("%d", o.ID),
				orderNo,
				o.CompanyName,
				fmt.Sprintf("%d", o.Quantity),
				o.PayStatus,
				o.DeliveryStatus,
				phone,
				o.CreatedAt.Format("2006-01-02 15:04"),
			})
		}
		if err := table.Render(); err != nil {
			log.Fatalf("failed to render table: %v", err)
		}
	}

	if *listUsers {
		users, err := client.ListUsersWithSubmittedOrders()
		if err != nil {
			log.Fatalf("failed to list users: %v", err)
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("ID", "Phone", "Submitted Orders", "Created")
		for _, u := range users {
			table.Append([]string{
				fmt.Sprintf("%d", u.ID),
				u.Phone,
				fmt.Sprintf("%d", len(u.Orders)),
				u.CreatedAt.Format("2006-01-02 15:04"),
			})
		}
		if err := table.Render(); err != nil {
			log.Fatalf("failed to render table: %v", err)
		}
	}
}
