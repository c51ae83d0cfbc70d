package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"otpctl/pkg/config"
	"otpctl/pkg/exporter"
	"otpctl/pkg/format"
	"otpctl/pkg/otp"
	"otpctl/pkg/session"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

const (
	actionNextPage = -1
	actionPrevPage = -2
	actionSearch   = -3
	actionQuit     = -4
)

var errQuit = errors.New("quit")

// Container wires the server info loader and the trip query store to the
// presenter and the interactive forms.
type Container struct {
	info      *session.ServerInfoLoader
	trips     *session.TripQuery
	presenter *Presenter
	fallback  *time.Location
}

func NewContainer(info *session.ServerInfoLoader, trips *session.TripQuery, fallback *time.Location) *Container {
	return &Container{
		info:      info,
		trips:     trips,
		presenter: NewPresenter(ResolveLocation(nil, fallback)),
		fallback:  fallback,
	}
}

// Presenter exposes the container's presenter.
func (c *Container) Presenter() *Presenter { return c.presenter }

// Watch keeps the presenter in sync with every store change until ctx is done
// or the returned stop func is called.
func (c *Container) Watch(ctx context.Context) (stop func()) {
	updates, unsubscribe := c.trips.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case s, ok := <-updates:
				if !ok {
					return
				}
				c.syncLocation()
				c.presenter.Sync(s)
			}
		}
	}()
	return func() {
		unsubscribe()
		<-done
	}
}

func (c *Container) syncLocation() {
	c.presenter.SetLocation(ResolveLocation(c.info.Info(), c.fallback))
}

// Run launches the interactive search loop.
func (c *Container) Run(ctx context.Context) error {
	c.info.Start(ctx)
	stop := c.Watch(ctx)
	defer stop()

	prefs, err := config.Load()
	if err != nil {
		prefs = &config.AppConfig{}
	}

	for {
		vars, err := c.searchForm(prefs)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		c.trips.SetVariables(vars)
		c.search(ctx, "Searching for trips...")

		if err := c.browse(ctx); err != nil {
			if errors.Is(err, errQuit) || errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
	}
}

func (c *Container) search(ctx context.Context, title string) {
	_ = spinner.New().
		Title(title).
		Action(func() {
			// failures are stored in the state and rendered with the list
			_ = c.trips.Trigger(ctx)
		}).
		Run()
	c.syncLocation()
	c.presenter.Sync(c.trips.Snapshot())
}

func (c *Container) searchForm(prefs *config.AppConfig) (otp.TripQueryVariables, error) {
	from, to := prefs.DefaultFrom, prefs.DefaultTo
	if prev := c.trips.Variables(); prev != nil {
		from, to = locationInput(prev.From), locationInput(prev.To)
	}
	var arriveBy bool
	var when string
	modes := append([]string(nil), prefs.DefaultModes...)

	var modeOptions []huh.Option[string]
	for _, m := range format.Modes() {
		opt := huh.NewOption(format.ModeLabel(m), m)
		for _, selected := range modes {
			if selected == m {
				opt = opt.Selected(true)
			}
		}
		modeOptions = append(modeOptions, opt)
	}

	validLocation := func(s string) error {
		_, err := otp.ParseLocation(s)
		return err
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("From").
				Description("Stop place id (NSR:StopPlace:337) or lat,lon. Prefix with 'Name::' to label it.").
				Value(&from).
				Validate(validLocation),
			huh.NewInput().
				Title("To").
				Value(&to).
				Validate(validLocation),
			huh.NewConfirm().
				Title("Arrive by the given time?").
				Value(&arriveBy),
			huh.NewInput().
				Title("Date and time").
				Description("YYYY-MM-DDTHH:MM, leave empty for now.").
				Value(&when).
				Validate(func(s string) error {
					_, err := c.parseWhen(s)
					return err
				}),
			huh.NewMultiSelect[string]().
				Title("Modes").
				Description("Leave empty to let the server decide.").
				Options(modeOptions...).
				Value(&modes).
				Height(8),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return otp.TripQueryVariables{}, err
	}

	// validated by the form
	fromLoc, _ := otp.ParseLocation(from)
	toLoc, _ := otp.ParseLocation(to)
	dt, _ := c.parseWhen(when)

	return otp.TripQueryVariables{
		From:     fromLoc,
		To:       toLoc,
		ArriveBy: arriveBy,
		DateTime: dt,
		Modes:    modes,
	}, nil
}

func (c *Container) parseWhen(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := format.ParseTimestamp(s, c.presenter.Location())
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func locationInput(l otp.Location) string {
	value := l.Place
	if l.Coordinates != nil {
		value = fmt.Sprintf("%g,%g", l.Coordinates.Latitude, l.Coordinates.Longitude)
	}
	if l.Name != "" {
		return l.Name + "::" + value
	}
	return value
}

func (c *Container) browse(ctx context.Context) error {
	for {
		state := c.trips.Snapshot()

		fmt.Println(accentStyle.Render("\n--- 🧭 Trip Patterns ---"))
		fmt.Print(c.presenter.RenderResultList(state))

		var options []huh.Option[int]
		if state.Result != nil {
			for _, sum := range otp.Summarize(state.Result) {
				label := fmt.Sprintf("%d. %s – %s  %s",
					sum.Index+1, c.presenter.clock(sum.Start), c.presenter.clock(sum.End), sum.Chain())
				options = append(options, huh.NewOption(label, sum.Index))
			}
			if state.Result.NextPageCursor != "" {
				options = append(options, huh.NewOption("Later trips ⏭", actionNextPage))
			}
			if state.Result.PreviousPageCursor != "" {
				options = append(options, huh.NewOption("Earlier trips ⏮", actionPrevPage))
			}
		}
		options = append(options,
			huh.NewOption("🔍 New search", actionSearch),
			huh.NewOption("Quit", actionQuit),
		)

		choice := c.presenter.Selected()
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[int]().
					Title("Pick a trip pattern to show on the map").
					Options(options...).
					Value(&choice),
			),
		).WithTheme(GetTheme())

		if err := form.Run(); err != nil {
			return err
		}

		switch choice {
		case actionQuit:
			return errQuit
		case actionSearch:
			return nil
		case actionNextPage, actionPrevPage:
			cursor := state.Result.NextPageCursor
			if choice == actionPrevPage {
				cursor = state.Result.PreviousPageCursor
			}
			if vars := c.trips.Variables(); vars != nil {
				c.trips.SetVariables(vars.WithPageCursor(cursor))
				c.search(ctx, "Fetching more trips...")
			}
			continue
		}

		n := len(state.Result.TripPatterns)
		idx := c.presenter.Select(choice, n)
		pattern := state.Result.TripPatterns[idx]

		fmt.Println(accentStyle.Render(fmt.Sprintf("\n--- 🗺️ Trip Pattern %d ---", idx+1)))
		fmt.Print(c.presenter.RenderMap(pattern))
		fmt.Println()

		if err := c.offerExport(pattern, idx); err != nil {
			return err
		}
	}
}

func (c *Container) offerExport(pattern otp.TripPattern, idx int) error {
	var export bool
	filename := fmt.Sprintf("trip_%d.ics", idx+1)

	confirm := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Export this trip to an .ics calendar file?").
				Value(&export),
		),
	).WithTheme(GetTheme())
	if err := confirm.Run(); err != nil {
		return err
	}
	if !export {
		return nil
	}

	nameForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("File name").
				Value(&filename),
		),
	).WithTheme(GetTheme())
	if err := nameForm.Run(); err != nil {
		return err
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := exporter.GenerateICS(pattern, fmt.Sprintf("Trip pattern %d", idx+1), file); err != nil {
		fmt.Println(errorStyle.Render(fmt.Sprintf("Export failed: %v", err)))
		return nil
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✨ Successfully exported trip to: %s\n", filename)))
	return nil
}
