// hotelctl is the command-line client for the hotel platform: guest search,
// booking and payment, manager hotel submission and admin moderation, driven
// by the same services the interactive surfaces use.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"smarthotel/internal/adapters/backend"
	"smarthotel/internal/adapters/observability"
	redisad "smarthotel/internal/adapters/redis"
	"smarthotel/internal/adapters/sessionfile"
	"smarthotel/internal/app"
	"smarthotel/internal/domain"
	"smarthotel/internal/shared"
)

type deps struct {
	cfg      shared.Config
	sessions *app.SessionService
	auth     *app.Authenticator
	backend  *backend.Client
	explorer *app.Explorer
}

func main() {
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)
	observability.Serve(cfg.MetricsAddr)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	sessions := app.NewSessionService(sessionfile.New(cfg.SessionFile))
	cl, err := backend.New(cfg.APIBase, sessions, cfg.APIRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("backend client init failed")
	}

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		cache = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	}

	d := &deps{
		cfg:      cfg,
		sessions: sessions,
		auth:     app.NewAuthenticator(cl, sessions),
		backend:  cl,
		explorer: app.NewExplorer(cl, cache, cfg.CacheTTL),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cmd, args := os.Args[1], os.Args[2:]
	if err := dispatch(ctx, d, cmd, args); err != nil {
		log.Error().Err(err).Str("command", cmd).Msg("command failed")
		os.Exit(1)
	}
}

func dispatch(ctx context.Context, d *deps, cmd string, args []string) error {
	switch cmd {
	case "register":
		return cmdRegister(ctx, d, args)
	case "login":
		return cmdLogin(ctx, d, args)
	case "logout":
		return d.auth.Logout()
	case "whoami":
		return cmdWhoami(d)
	case "menu":
		return cmdMenu(d)
	case "search":
		return cmdSearch(ctx, d, args)
	case "hotel":
		return cmdHotel(ctx, d, args)
	case "book":
		return cmdBook(ctx, d, args)
	case "pay":
		return cmdPay(ctx, d, args)
	case "bookings":
		return printJSON(call(ctx, d.backend.ListBookings))
	case "payments":
		return printJSON(call(ctx, d.backend.ListPayments))
	case "review":
		return cmdReview(ctx, d, args)
	case "reviews":
		return printJSON(call(ctx, d.backend.ListReviews))
	case "loyalty":
		return printJSON(call(ctx, d.backend.Loyalty))
	case "redeem":
		return cmdRedeem(ctx, d, args)
	case "add-hotel":
		return cmdAddHotel(ctx, d, args)
	case "my-hotels":
		return printJSON(call(ctx, d.backend.ManagerHotels))
	case "reply":
		return cmdReply(ctx, d, args)
	case "moderate":
		return cmdModerate(ctx, d, args)
	case "users":
		return printJSON(call(ctx, d.backend.AdminUsers))
	case "stats":
		return printJSON(call(ctx, d.backend.DashboardStats))
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: hotelctl <command> [flags]

account:   register login logout whoami menu
guest:     search hotel book pay bookings payments review reviews loyalty redeem
manager:   add-hotel my-hotels reply
admin:     moderate users stats`)
}

// call adapts a no-argument endpoint to the printJSON helper.
func call[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	return fn(ctx)
}

func printJSON[T any](v T, err error) error {
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func cmdRegister(ctx context.Context, d *deps, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	manager := fs.Bool("manager", false, "register as a hotel manager")
	_ = fs.Parse(args)
	if *email == "" || *password == "" {
		return fmt.Errorf("-email and -password are required")
	}
	role := domain.RoleGuest
	if *manager {
		role = domain.RoleManager
	}
	if err := d.auth.Register(ctx, *name, *email, *password, role); err != nil {
		return err
	}
	fmt.Println("registered; run: hotelctl login")
	return nil
}

func cmdLogin(ctx context.Context, d *deps, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	_ = fs.Parse(args)
	sess, err := d.auth.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("signed in as %s (%s)\n", sess.User.Email, sess.User.Role)
	return nil
}

func cmdWhoami(d *deps) error {
	sess, ok := d.sessions.Current()
	if !ok {
		fmt.Println("not signed in")
		return nil
	}
	fmt.Printf("%s (%s)\n", sess.User.Email, sess.User.Role)
	return nil
}

func cmdMenu(d *deps) error {
	role := domain.RoleGuest
	if sess, ok := d.sessions.Current(); ok {
		role = sess.User.Role
	}
	for _, it := range app.MenuFor(role) {
		fmt.Printf("%-20s %s\n", it.Key, it.Label)
	}
	return nil
}

func cmdSearch(ctx context.Context, d *deps, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	location := fs.String("location", "", "destination")
	roomType := fs.String("room", "standard", "room type: standard|deluxe|suite")
	_ = fs.Parse(args)
	rt, ok := domain.ParseRoomType(*roomType)
	if !ok {
		return fmt.Errorf("unknown room type %q", *roomType)
	}
	return printJSON(d.explorer.SearchHotels(ctx, domain.HotelQuery{Location: *location, RoomType: rt}))
}

func cmdHotel(ctx context.Context, d *deps, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: hotelctl hotel <id>")
	}
	return printJSON(d.explorer.GetHotel(ctx, args[0]))
}

// cmdBook runs the whole workflow in one shot: load details, set dates, create
// the booking.
func cmdBook(ctx context.Context, d *deps, args []string) error {
	fs := flag.NewFlagSet("book", flag.ExitOnError)
	hotelID := fs.String("hotel", "", "hotel id")
	roomType := fs.String("room", "standard", "room type")
	checkin := fs.String("checkin", "", "check-in date (YYYY-MM-DD)")
	checkout := fs.String("checkout", "", "check-out date (YYYY-MM-DD)")
	_ = fs.Parse(args)

	in, err := time.Parse(domain.DateLayout, *checkin)
	if err != nil {
		return fmt.Errorf("bad -checkin: %w", err)
	}
	out, err := time.Parse(domain.DateLayout, *checkout)
	if err != nil {
		return fmt.Errorf("bad -checkout: %w", err)
	}
	rt, ok := domain.ParseRoomType(*roomType)
	if !ok {
		return fmt.Errorf("unknown room type %q", *roomType)
	}

	w := app.NewBookingWorkflow(d.explorer, d.backend, d.sessions)
	if err := w.OpenDetails(ctx, *hotelID); err != nil {
		return err
	}
	if err := w.SetRoomType(rt); err != nil {
		return err
	}
	w.SetDates(in, out)
	if !w.CanConfirm() {
		return fmt.Errorf("cannot book: %d nights for %s", w.Nights(), *hotelID)
	}
	if err := w.ConfirmBooking(ctx); err != nil {
		return err
	}
	fmt.Printf("booking %s created: %d nights, total %s\nnext: hotelctl pay -booking %s\n",
		w.BookingID(), w.Nights(), w.Total(), w.BookingID())
	return nil
}

func cmdPay(ctx context.Context, d *deps, args []string) error {
	fs := flag.NewFlagSet("pay", flag.ExitOnError)
	bookingID := fs.String("booking", "", "booking id")
	vpa := fs.String("upi", "", "UPI address (pays by UPI)")
	cardNum := fs.String("card", "", "card number (pays by card)")
	cardName := fs.String("card-name", "", "name on card")
	cardExp := fs.String("card-expiry", "", "MM/YY")
	cardCVV := fs.String("card-cvv", "", "CVV")
	points := fs.Int("points", 0, "loyalty points to apply")
	_ = fs.Parse(args)

	sess, ok := d.sessions.Current()
	if !ok {
		return fmt.Errorf("sign in first")
	}

	bookings, err := d.backend.ListBookings(ctx)
	if err != nil {
		return err
	}
	var booking *domain.Booking
	for i := range bookings {
		if bookings[i].ID == *bookingID {
			booking = &bookings[i]
			break
		}
	}
	if booking == nil {
		return fmt.Errorf("no booking %q for %s", *bookingID, sess.User.Email)
	}
	if booking.Status == domain.BookingPaid {
		return fmt.Errorf("booking %s is already paid", booking.ID)
	}

	draft := app.PaymentDraft{PointsToUse: *points}
	if *vpa != "" {
		draft.Method = domain.PayUPI
		draft.UPI = domain.UPIDetails{VPA: *vpa}
	} else {
		draft.Method = domain.PayCard
		draft.Card = domain.CardDetails{Number: *cardNum, Name: *cardName, Expiry: *cardExp, CVV: *cardCVV}
	}
	if err := draft.Validate(); err != nil {
		return err
	}

	available := 0
	if *points > 0 {
		info, err := d.backend.Loyalty(ctx)
		if err != nil {
			return err
		}
		available = info.Available
	}
	use := app.ClampPoints(*points, available, booking.Total)

	var details any = draft.UPI
	if draft.Method == domain.PayCard {
		details = draft.Card
	}
	payment, err := d.backend.CreatePayment(ctx, domain.PaymentRequest{
		BookingID:         booking.ID,
		UserEmail:         sess.User.Email,
		Amount:            booking.Total,
		Method:            draft.Method,
		Details:           details,
		LoyaltyPointsUsed: use,
	})
	if err != nil {
		return err
	}
	fmt.Printf("paid %s for booking %s (%d points applied)\n",
		app.FinalAmount(booking.Total, use), payment.BookingID, use)
	return nil
}

func cmdReview(ctx context.Context, d *deps, args []string) error {
	fs := flag.NewFlagSet("review", flag.ExitOnError)
	bookingID := fs.String("booking", "", "booking id")
	hotelID := fs.String("hotel", "", "hotel id")
	rating := fs.Int("rating", 5, "rating 1..5")
	comment := fs.String("comment", "", "review text")
	_ = fs.Parse(args)
	reviews := app.NewReviews(d.backend)
	return printJSON(reviews.Submit(ctx, domain.ReviewRequest{
		BookingID: *bookingID,
		HotelID:   *hotelID,
		Rating:    *rating,
		Comment:   *comment,
	}))
}

func cmdRedeem(ctx context.Context, d *deps, args []string) error {
	fs := flag.NewFlagSet("redeem", flag.ExitOnError)
	points := fs.Int("points", 0, "points to redeem")
	_ = fs.Parse(args)
	rewards := app.NewRewards(d.backend)
	info, err := rewards.Info(ctx)
	if err != nil {
		return err
	}
	return printJSON(rewards.Redeem(ctx, info, *points))
}

func cmdAddHotel(ctx context.Context, d *deps, args []string) error {
	fs := flag.NewFlagSet("add-hotel", flag.ExitOnError)
	name := fs.String("name", "", "hotel name")
	location := fs.String("location", "", "location")
	desc := fs.String("description", "", "description")
	image := fs.String("image", "", "image url")
	amenities := fs.String("amenities", "", "comma-separated amenities")
	rooms := fs.String("rooms", "", "room rows as type:price:available, comma-separated (default rows if empty)")
	_ = fs.Parse(args)

	e := app.NewHotelEditor(d.backend)
	e.Name, e.Location, e.Description, e.ImageURL, e.Amenities = *name, *location, *desc, *image, *amenities

	if *rooms != "" {
		for i := len(e.Rows()) - 1; i >= 0; i-- {
			_ = e.RemoveRow(i)
		}
		for _, spec := range strings.Split(*rooms, ",") {
			row, err := parseRoomRow(spec)
			if err != nil {
				return err
			}
			e.AddRow()
			if err := e.UpdateRow(len(e.Rows())-1, row); err != nil {
				return err
			}
		}
	}
	if err := e.Submit(ctx); err != nil {
		return err
	}
	fmt.Println("hotel submitted; it appears publicly once approved")
	return nil
}

func parseRoomRow(spec string) (domain.RoomRow, error) {
	parts := strings.Split(strings.TrimSpace(spec), ":")
	if len(parts) != 3 {
		return domain.RoomRow{}, fmt.Errorf("bad room spec %q, want type:price:available", spec)
	}
	rt, ok := domain.ParseRoomType(parts[0])
	if !ok {
		return domain.RoomRow{}, fmt.Errorf("unknown room type %q", parts[0])
	}
	price, err := decimal.NewFromString(parts[1])
	if err != nil {
		return domain.RoomRow{}, fmt.Errorf("bad price in %q: %w", spec, err)
	}
	var avail int
	if _, err := fmt.Sscanf(parts[2], "%d", &avail); err != nil {
		return domain.RoomRow{}, fmt.Errorf("bad availability in %q: %w", spec, err)
	}
	return domain.RoomRow{Type: rt, Price: price, Available: avail}, nil
}

func cmdReply(ctx context.Context, d *deps, args []string) error {
	fs := flag.NewFlagSet("reply", flag.ExitOnError)
	reviewID := fs.String("review", "", "review id")
	text := fs.String("text", "", "reply text")
	_ = fs.Parse(args)
	if *reviewID == "" || *text == "" {
		return fmt.Errorf("-review and -text are required")
	}
	return d.backend.ReplyToReview(ctx, *reviewID, *text)
}

func cmdModerate(ctx context.Context, d *deps, args []string) error {
	fs := flag.NewFlagSet("moderate", flag.ExitOnError)
	status := fs.String("status", "pending", "queue to load: pending|approved|rejected")
	approve := fs.String("approve", "", "hotel id to approve")
	reject := fs.String("reject", "", "hotel id to reject")
	remove := fs.String("delete", "", "hotel id to delete")
	_ = fs.Parse(args)

	st, ok := domain.ParseHotelStatus(*status)
	if !ok {
		return fmt.Errorf("unknown status %q", *status)
	}
	mod := app.NewModerationList(d.backend)
	if err := mod.Load(ctx, st); err != nil {
		return err
	}

	switch {
	case *approve != "":
		if err := mod.Approve(ctx, *approve); err != nil {
			return err
		}
		fmt.Printf("approved %s\n", *approve)
	case *reject != "":
		if err := mod.Reject(ctx, *reject); err != nil {
			return err
		}
		fmt.Printf("rejected %s\n", *reject)
	case *remove != "":
		if err := mod.Delete(ctx, *remove); err != nil {
			return err
		}
		fmt.Printf("deleted %s\n", *remove)
	}
	return printJSON(mod.Items(), nil)
}
