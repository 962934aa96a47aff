package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"stayfront/internal/api"
	"stayfront/internal/app/flow"
	"stayfront/internal/app/reception"
	"stayfront/internal/config"
	"stayfront/internal/domain/promotion"
	"stayfront/internal/obs"
	"stayfront/internal/session"
)

const usage = `stayfront — hotel booking client

Usage:
  stayfront login <email> <password>
  stayfront register <name> <email> <password> [role]
  stayfront logout
  stayfront me
  stayfront rooms [-min N] [-max N] [-amenity S] [-checkin D] [-checkout D]
  stayfront book <roomCategoryId> <checkIn> <checkOut> <rooms> [promoCode]
  stayfront history
  stayfront rebook <reservationNumber> <newCheckIn> <newCheckOut>
  stayfront reception
  stayfront admin rooms|create-room|update-room|promos|create-promo [args]

Dates use YYYY-MM-DD.`

type app struct {
	cfg      config.Config
	logger   *slog.Logger
	client   *api.Client
	sessions *session.Manager
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	store := session.NewFileStore(cfg.SessionFile)
	manager := &session.Manager{Store: store}
	client := api.New(cfg.APIBaseURL, &http.Client{Timeout: cfg.HTTPTimeout}, logger, manager)
	manager.Auth = client

	a := &app{cfg: cfg, logger: logger, client: client, sessions: manager}

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", errorText(err))
		logger.Debug("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.login(ctx, args)
	case "register":
		return a.register(ctx, args)
	case "logout":
		return a.sessions.Logout()
	case "me":
		return a.me(ctx)
	case "rooms":
		return a.rooms(ctx, args)
	case "book":
		return a.book(ctx, args)
	case "history":
		return a.history(ctx)
	case "rebook":
		return a.rebook(ctx, args)
	case "reception":
		return a.reception(ctx)
	case "admin":
		return a.admin(ctx, args)
	default:
		fmt.Fprintln(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: login <email> <password>")
	}
	s, err := a.sessions.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Printf("Welcome back, %s (%s)\n", s.Name, s.Role)
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return errors.New("usage: register <name> <email> <password> [role]")
	}
	params := api.RegisterParams{Name: args[0], Email: args[1], Password: args[2]}
	if len(args) > 3 {
		params.Role = args[3]
	}
	s, err := a.sessions.Register(ctx, params)
	if err != nil {
		return err
	}
	fmt.Printf("Account created. Welcome, %s (%s)\n", s.Name, s.Role)
	return nil
}

func (a *app) me(ctx context.Context) error {
	if _, ok := a.sessions.Current(); !ok {
		return session.ErrNotLoggedIn
	}
	profile, err := a.client.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s>\nRole: %s\nLoyalty points: %d\n",
		profile.Name, profile.Email, profile.Role, profile.LoyaltyPoints)
	return nil
}

func (a *app) rooms(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("rooms", flag.ContinueOnError)
	minPrice := fs.Float64("min", 0, "minimum price per night")
	maxPrice := fs.Float64("max", 0, "maximum price per night")
	amenity := fs.String("amenity", "", "required amenity")
	checkIn := fs.String("checkin", "", "check-in date")
	checkOut := fs.String("checkout", "", "check-out date")
	if err := fs.Parse(args); err != nil {
		return err
	}

	filter := api.RoomFilter{MinPrice: *minPrice, MaxPrice: *maxPrice, Amenity: *amenity}
	var err error
	if filter.CheckIn, err = parseOptionalDate(*checkIn); err != nil {
		return err
	}
	if filter.CheckOut, err = parseOptionalDate(*checkOut); err != nil {
		return err
	}

	rooms, err := a.client.FilterRooms(ctx, filter)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE/NIGHT\tROOMS\tAMENITIES")
	for _, r := range rooms {
		fmt.Fprintf(w, "%d\t%s\t%.0f\t%d\t%s\n", r.ID, r.Name, r.PricePerNight, r.TotalRooms, r.Amenities)
	}
	return w.Flush()
}

func (a *app) book(ctx context.Context, args []string) error {
	if len(args) < 4 {
		return errors.New("usage: book <roomCategoryId> <checkIn> <checkOut> <rooms> [promoCode]")
	}
	roomID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("bad room category id %q", args[0])
	}
	checkIn, err := time.Parse(time.DateOnly, args[1])
	if err != nil {
		return fmt.Errorf("bad check-in date %q", args[1])
	}
	checkOut, err := time.Parse(time.DateOnly, args[2])
	if err != nil {
		return fmt.Errorf("bad check-out date %q", args[2])
	}
	roomCount, err := strconv.Atoi(args[3])
	if err != nil {
		return fmt.Errorf("bad room count %q", args[3])
	}

	room, err := a.findRoom(ctx, roomID)
	if err != nil {
		return err
	}

	validator := promotion.Validator{Service: api.PromotionLookup{Client: a.client}}
	booking := flow.NewBooking(a.client, validator, room, a.cfg.Currency, time.Now)
	if err := booking.SetDates(checkIn, checkOut); err != nil {
		return err
	}
	booking.SetRooms(roomCount)

	if len(args) > 4 {
		booking.EditPromoCode(args[4])
		result := booking.ApplyPromo(ctx)
		if result.Valid {
			fmt.Printf("Promo applied: %s%% off\n", result.DiscountPercentage)
		} else {
			fmt.Println("Promo warning:", result.Message)
		}
	}

	quote, err := booking.Quote()
	if err != nil {
		return err
	}
	if quote.Computable {
		fmt.Printf("Quote: %d night(s) x %d room(s) = %s", quote.Nights, quote.RoomsBooked, quote.Base)
		if !quote.Discount.IsZero() {
			fmt.Printf(" - %s discount", quote.Discount)
		}
		fmt.Printf(" → total %s (estimate; backend is authoritative)\n", quote.Total)
	}

	reservation, err := booking.Submit(ctx)
	if err != nil {
		return err
	}
	printReservation(reservation)
	return nil
}

func (a *app) history(ctx context.Context) error {
	bookings, err := a.client.MyBookings(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RESERVATION\tROOM\tCHECK-IN\tCHECK-OUT\tROOMS\tTOTAL\tSTATUS")
	for _, b := range bookings {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.0f\t%s\n",
			b.ReservationNumber, b.RoomCategoryName, b.CheckInDate, b.CheckOutDate,
			b.RoomsBooked, b.TotalPrice, b.Status)
	}
	return w.Flush()
}

func (a *app) rebook(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return errors.New("usage: rebook <reservationNumber> <newCheckIn> <newCheckOut>")
	}
	newCheckIn, err := time.Parse(time.DateOnly, args[1])
	if err != nil {
		return fmt.Errorf("bad check-in date %q", args[1])
	}
	newCheckOut, err := time.Parse(time.DateOnly, args[2])
	if err != nil {
		return fmt.Errorf("bad check-out date %q", args[2])
	}

	rebooking := flow.NewRebook(a.client, args[0], time.Now)
	if err := rebooking.SetDates(newCheckIn, newCheckOut); err != nil {
		return err
	}
	reservation, err := rebooking.Submit(ctx)
	if err != nil {
		return err
	}
	fmt.Println("Rebooking confirmed.")
	printReservation(reservation)
	return nil
}

func (a *app) reception(ctx context.Context) error {
	current, ok := a.sessions.Current()
	if !ok {
		return session.ErrNotLoggedIn
	}
	if !current.Role.CanViewReception() {
		return fmt.Errorf("role %s cannot open the reception dashboard", current.Role)
	}

	dashboard := reception.NewDashboard(a.client, time.Now, a.logger)
	snap, err := dashboard.Load(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Bookings: %d  Check-ins today: %d  In-house now: %d\n",
		snap.Stats.TotalBookings, snap.Stats.TodayCheckIns, snap.InHouse)
	fmt.Printf("Revenue today: %.0f  Total: %.0f\n", snap.Stats.TodayRevenue, snap.Stats.TotalRevenue)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tTOTAL\tFREE TODAY\tOCCUPANCY")
	for _, cat := range snap.Availability {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d%%\n", cat.Name, cat.TotalRooms, cat.AvailableToday, cat.OccupancyPercent)
	}
	return w.Flush()
}

func (a *app) admin(ctx context.Context, args []string) error {
	current, ok := a.sessions.Current()
	if !ok {
		return session.ErrNotLoggedIn
	}
	if !current.Role.CanManageRooms() {
		return fmt.Errorf("role %s cannot manage rooms", current.Role)
	}
	if len(args) == 0 {
		return errors.New("usage: admin rooms|create-room|update-room|promos|create-promo")
	}

	switch args[0] {
	case "rooms":
		return a.rooms(ctx, nil)
	case "create-room", "update-room":
		return a.adminRoom(ctx, args)
	case "promos":
		promos, err := a.client.AdminPromotions(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tDISCOUNT\tEXPIRES\tSTATUS")
		for _, p := range promos {
			fmt.Fprintf(w, "%s\t%s%%\t%s\t%s\n", p.Code, p.DiscountPercentage, p.ExpiryDate, promoStatus(p))
		}
		return w.Flush()
	case "create-promo":
		if len(args) != 4 {
			return errors.New("usage: admin create-promo <code> <discountPercent> <expiryDate>")
		}
		discount, err := decimal.NewFromString(args[2])
		if err != nil {
			return fmt.Errorf("bad discount %q", args[2])
		}
		promo := api.AdminPromotion{Code: args[1], DiscountPercentage: discount, ExpiryDate: args[3], IsActive: true}
		created, err := a.client.CreatePromotion(ctx, promo)
		if err != nil {
			return err
		}
		fmt.Printf("Created promo %s (%s%% off, expires %s)\n",
			created.Code, created.DiscountPercentage, created.ExpiryDate)
		return nil
	default:
		return fmt.Errorf("unknown admin subcommand %q", args[0])
	}
}

func (a *app) adminRoom(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	id := fs.Int64("id", 0, "room category id (update only)")
	name := fs.String("name", "", "category name")
	price := fs.Float64("price", 0, "price per night")
	total := fs.Int("total", 1, "total rooms")
	amenities := fs.String("amenities", "", "comma-separated amenities")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	payload := api.RoomPayload{
		Name:          *name,
		PricePerNight: *price,
		TotalRooms:    *total,
		Amenities:     *amenities,
	}
	if args[0] == "update-room" {
		if *id == 0 {
			return errors.New("update-room requires -id")
		}
		room, err := a.client.UpdateRoom(ctx, *id, payload)
		if err != nil {
			return err
		}
		fmt.Printf("Updated room category %d (%s)\n", room.ID, room.Name)
		return nil
	}
	room, err := a.client.CreateRoom(ctx, payload)
	if err != nil {
		return err
	}
	fmt.Printf("Created room category %d (%s)\n", room.ID, room.Name)
	return nil
}

func (a *app) findRoom(ctx context.Context, id int64) (api.RoomCategory, error) {
	rooms, err := a.client.Rooms(ctx)
	if err != nil {
		return api.RoomCategory{}, err
	}
	for _, r := range rooms {
		if r.ID == id {
			return r, nil
		}
	}
	return api.RoomCategory{}, fmt.Errorf("room category %d not found", id)
}

func promoStatus(p api.AdminPromotion) string {
	promo, err := p.Domain()
	if err != nil {
		return "unknown"
	}
	if err := promo.Applicable(time.Now()); err != nil {
		switch {
		case errors.Is(err, promotion.ErrInactive):
			return "inactive"
		case errors.Is(err, promotion.ErrExpired):
			return "expired"
		}
		return "unknown"
	}
	return "active"
}

func printReservation(r api.Reservation) {
	fmt.Printf("Reservation %s\n", r.ReservationNumber)
	if r.RoomNumbers != "" {
		fmt.Printf("  Room(s): %s\n", r.RoomNumbers)
	}
	fmt.Printf("  %s → %s (%d room(s))\n", r.CheckInDate, r.CheckOutDate, r.RoomsBooked)
	if r.DiscountAmount > 0 {
		fmt.Printf("  Original: %.0f  Discount: -%.0f\n", r.OriginalPrice, r.DiscountAmount)
	}
	fmt.Printf("  Total: %.0f\n", r.TotalPrice)
	if r.LoyaltyPointsEarned > 0 {
		fmt.Printf("  Loyalty points earned: %d\n", r.LoyaltyPointsEarned)
	}
}

// errorText prefers the user-facing message for API failures and the plain
// error text for everything local (usage mistakes, bad arguments).
func errorText(err error) string {
	var backend *api.BackendError
	if errors.As(err, &backend) {
		return backend.UserMessage()
	}
	var network *api.NetworkError
	if errors.As(err, &network) {
		return network.UserMessage()
	}
	return err.Error()
}

func parseOptionalDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q (want YYYY-MM-DD)", raw)
	}
	return t, nil
}
