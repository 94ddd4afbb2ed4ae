package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/hotelops/reservation-ledger-go/ledger"
)

func run(ctx context.Context, ldg *ledger.Ledger, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "customer":
		return runCustomer(ctx, ldg.Customers(), args[1:])
	case "hotel":
		return runHotel(ctx, ldg.Hotels(), args[1:])
	case "reservation":
		return runReservation(ctx, ldg.Reservations(), args[1:])
	case "audit":
		return runAudit(ctx, ldg, args[1:])
	default:
		return errUsage
	}
}

func runCustomer(ctx context.Context, customers *ledger.CustomerStore, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	fs := flag.NewFlagSet("customer "+args[0], flag.ContinueOnError)
	id := fs.String("id", "", "customer id")
	name := fs.String("name", "", "customer name")
	email := fs.String("email", "", "customer email")

	if err := fs.Parse(args[1:]); err != nil {
		return errUsage
	}

	switch args[0] {
	case "create":
		customer, err := customers.Create(ctx, *id, *name, *email)
		if err != nil {
			return err
		}

		fmt.Printf("Created customer %s\n", customer.ID)

		return nil

	case "delete":
		if err := customers.Delete(ctx, *id); err != nil {
			return err
		}

		fmt.Printf("Deleted customer %s\n", *id)

		return nil

	case "show":
		rendering, err := customers.Display(ctx, *id)
		if err != nil {
			return err
		}

		fmt.Println(rendering)

		return nil

	case "modify":
		update := ledger.CustomerUpdate{}
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "name":
				update.Name = name
			case "email":
				update.Email = email
			}
		})

		customer, err := customers.Modify(ctx, *id, update)
		if err != nil {
			return err
		}

		fmt.Printf("Modified customer %s\n", customer.ID)

		return nil

	case "list":
		all, err := customers.List(ctx)
		if err != nil {
			return err
		}

		for _, customer := range all {
			fmt.Printf("%s  %s  %s\n", customer.ID, customer.Name, customer.Email)
		}

		return nil

	default:
		return errUsage
	}
}

func runHotel(ctx context.Context, hotels *ledger.HotelStore, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	fs := flag.NewFlagSet("hotel "+args[0], flag.ContinueOnError)
	name := fs.String("name", "", "hotel name")
	newName := fs.String("new-name", "", "new hotel name")
	location := fs.String("location", "", "hotel location")
	rooms := fs.Int("rooms", 0, "total rooms")

	if err := fs.Parse(args[1:]); err != nil {
		return errUsage
	}

	switch args[0] {
	case "create":
		hotel, err := hotels.Create(ctx, *name, *location, *rooms)
		if err != nil {
			return err
		}

		fmt.Printf("Created hotel %s\n", hotel.Name)

		return nil

	case "delete":
		if err := hotels.Delete(ctx, *name); err != nil {
			return err
		}

		fmt.Printf("Deleted hotel %s\n", *name)

		return nil

	case "show":
		rendering, err := hotels.Display(ctx, *name)
		if err != nil {
			return err
		}

		fmt.Println(rendering)

		return nil

	case "modify":
		update := ledger.HotelUpdate{}
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "new-name":
				update.Name = newName
			case "location":
				update.Location = location
			case "rooms":
				update.TotalRooms = rooms
			}
		})

		hotel, err := hotels.Modify(ctx, *name, update)
		if err != nil {
			return err
		}

		fmt.Printf("Modified hotel %s\n", hotel.Name)

		return nil

	case "list":
		all, err := hotels.List(ctx)
		if err != nil {
			return err
		}

		for _, hotel := range all {
			fmt.Printf("%s  %s  %d/%d rooms reserved\n",
				hotel.Name, hotel.Location, hotel.ReservedRooms, hotel.TotalRooms)
		}

		return nil

	default:
		return errUsage
	}
}

func runReservation(ctx context.Context, reservations *ledger.ReservationStore, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	fs := flag.NewFlagSet("reservation "+args[0], flag.ContinueOnError)
	id := fs.String("id", "", "reservation id")
	customerID := fs.String("customer", "", "customer id")
	hotelName := fs.String("hotel", "", "hotel name")

	if err := fs.Parse(args[1:]); err != nil {
		return errUsage
	}

	switch args[0] {
	case "create":
		reservation, err := reservations.Create(ctx, *customerID, *hotelName)
		if err != nil {
			return err
		}

		fmt.Printf("Created reservation %s\n", reservation.ID)

		return nil

	case "cancel":
		if err := reservations.Cancel(ctx, *id); err != nil {
			return err
		}

		fmt.Printf("Cancelled reservation %s\n", *id)

		return nil

	case "show":
		reservation, err := reservations.Get(ctx, *id)
		if err != nil {
			return err
		}

		fmt.Println(reservation.Render())

		return nil

	case "list":
		all, err := reservations.List(ctx)
		if err != nil {
			return err
		}

		for _, reservation := range all {
			fmt.Printf("%s  customer %s  hotel %s\n",
				reservation.ID, reservation.CustomerID, reservation.HotelName)
		}

		return nil

	default:
		return errUsage
	}
}

func runAudit(ctx context.Context, ldg *ledger.Ledger, args []string) error {
	fs := flag.NewFlagSet("audit", flag.ContinueOnError)
	repair := fs.Bool("repair", false, "realign drifted room counters")

	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	var report ledger.AuditReport
	var err error

	if *repair {
		report, err = ldg.Repair(ctx)
	} else {
		report, err = ldg.Audit(ctx)
	}

	if err != nil {
		return err
	}

	if report.Clean() {
		fmt.Println("Audit clean: all room counters match the live reservations.")
		return nil
	}

	for _, drift := range report.Drifts {
		fmt.Printf("Hotel %s: reserved_rooms=%d but %d active reservations\n",
			drift.HotelName, drift.ReservedRooms, drift.ActiveReservations)
	}

	for _, orphan := range report.Orphans {
		fmt.Printf("Orphaned reservation %s (customer %s, hotel %s)\n",
			orphan.ID, orphan.CustomerID, orphan.HotelName)
	}

	if *repair {
		fmt.Println("Drifted counters realigned.")
	}

	return nil
}
