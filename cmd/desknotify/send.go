package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/desknotify/internal/config"
	"github.com/llehouerou/desknotify/internal/errmsg"
	"github.com/llehouerou/desknotify/notify"
)

type sender interface {
	Send(title, subtitle, body string, opts *notify.Options) (notify.Response, error)
	Close() error
}

var (
	labelStyle = lipgloss.NewStyle().Bold(true)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// sendFlags holds the raw flag values of the send command.
type sendFlags struct {
	title    string
	subtitle string
	action   string
	dropdown string
	options  []string
	reply    string
	close    string
	icon     string
	image    string
	group    string
	in       time.Duration
	at       string
	sync     bool
	sound    string
}

// NewSendCmd creates the send command. open is called only once the flags
// are valid.
func NewSendCmd(open func() (sender, error), cfg *config.Config, logger *log.Logger) *cobra.Command {
	if open == nil {
		panic("NewSendCmd: open dependency cannot be nil")
	}

	var f sendFlags

	cmd := &cobra.Command{
		Use:   "send [flags] <body>",
		Short: "Post a notification and print the user's response",
		Long: `Post a notification and print the user's response.

With --sync and one of --action, --dropdown or --reply, send waits until the
user answers and prints the answer. Otherwise it returns once the
notification is posted or scheduled.`,
		Example: `  desknotify send --title Build "Finished in 2m"
  desknotify send --title Deploy --action Ship --close Later --sync "Ready?"
  desknotify send --title Lunch --dropdown Where --option Pizza --option Sushi --sync "Pick one"
  desknotify send --title Standup --in 10m --sound Glass "In ten minutes"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			body := strings.Join(args, " ")
			now := time.Now()

			opts, at, err := f.build(cfg, now)
			if err != nil {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), errmsg.Format(errmsg.OpParseOptions, err))
				return err
			}

			s, err := open()
			if err != nil {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), errmsg.Format(errmsg.OpBridgeOpen, err))
				return err
			}
			defer s.Close()

			logger.Debug("sending notification", "title", f.title, "fields", notify.Encode(opts).Map())
			resp, err := s.Send(f.title, f.subtitle, body, opts)
			if err != nil {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), errmsg.Format(errmsg.OpNotifySend, err))
				return err
			}

			if at != nil && at.After(now) && !f.waits() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(),
					labelStyle.Render("scheduled")+" "+mutedStyle.Render(humanize.RelTime(*at, now, "ago", "from now")))
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderResponse(resp))
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.title, "title", "t", "", "notification title")
	fl.StringVarP(&f.subtitle, "subtitle", "s", "", "notification subtitle")
	fl.StringVar(&f.action, "action", "", "show a single action button with this label")
	fl.StringVar(&f.dropdown, "dropdown", "", "show a menu of --option entries with this label")
	fl.StringArrayVar(&f.options, "option", nil, "menu entry for --dropdown (repeatable)")
	fl.StringVar(&f.reply, "reply", "", "show a reply field with this placeholder")
	fl.StringVar(&f.close, "close", "", "show a close button with this label")
	fl.StringVar(&f.icon, "icon", "", "app icon path")
	fl.StringVar(&f.image, "image", "", "content image path")
	fl.StringVar(&f.group, "group", "", "group id; replaces earlier notifications of the group")
	fl.DurationVar(&f.in, "in", 0, "deliver after this delay")
	fl.StringVar(&f.at, "at", "", "deliver at this RFC 3339 time")
	fl.BoolVar(&f.sync, "sync", false, "wait for the user's answer")
	fl.StringVar(&f.sound, "sound", "", "system sound name (see 'desknotify sounds')")

	return cmd
}

// build validates the flags and turns them into notification options. It
// also returns the delivery time, if any.
func (f sendFlags) build(cfg *config.Config, now time.Time) (*notify.Options, *time.Time, error) {
	set := 0
	for _, v := range []string{f.action, f.dropdown, f.reply} {
		if v != "" {
			set++
		}
	}
	if set > 1 {
		return nil, nil, errors.New("--action, --dropdown and --reply are mutually exclusive")
	}
	if len(f.options) > 0 && f.dropdown == "" {
		return nil, nil, errors.New("--option requires --dropdown")
	}
	if f.in != 0 && f.at != "" {
		return nil, nil, errors.New("--in and --at are mutually exclusive")
	}
	if f.in < 0 {
		return nil, nil, fmt.Errorf("--in: negative delay %s", f.in)
	}

	opts := notify.NewOptions()
	switch {
	case f.action != "":
		opts.MainButton(notify.SingleAction{Label: f.action})
	case f.dropdown != "":
		opts.MainButton(notify.DropdownActions{Label: f.dropdown, Actions: f.options})
	case f.reply != "":
		opts.MainButton(notify.ResponseField{Placeholder: f.reply})
	}

	if f.close != "" {
		opts.CloseButton(f.close)
	}
	if icon := firstNonEmpty(f.icon, cfg.DefaultIcon); icon != "" {
		opts.AppIcon(icon)
	}
	if f.image != "" {
		opts.ContentImage(f.image)
	}
	if f.group != "" {
		opts.GroupID(f.group)
	}
	if s := firstNonEmpty(f.sound, cfg.DefaultSound); s != "" {
		opts.Sound(s)
	}

	var at *time.Time
	switch {
	case f.in > 0:
		t := now.Add(f.in)
		at = &t
	case f.at != "":
		t, err := time.Parse(time.RFC3339, f.at)
		if err != nil {
			return nil, nil, fmt.Errorf("--at: %w", err)
		}
		at = &t
	case f.sync:
		// Waiting needs a synchronous delivery date; deliver now.
		at = &now
	}
	if at != nil {
		opts.DeliverAt(*at, f.sync)
	}

	return opts, at, nil
}

// waits reports whether send blocks for the user's answer.
func (f sendFlags) waits() bool {
	return f.sync && (f.action != "" || f.dropdown != "" || f.reply != "")
}

func renderResponse(r notify.Response) string {
	switch r.Kind {
	case notify.ActionButton, notify.CloseButton, notify.Reply:
		return labelStyle.Render(r.Kind.String()) + " " + valueStyle.Render(r.Value)
	case notify.Click:
		return labelStyle.Render(r.Kind.String())
	}
	return mutedStyle.Render(r.Kind.String())
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
