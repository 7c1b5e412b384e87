// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command kiosk runs the rating page in a terminal against a Feedback Page
// API, one customer after another until input ends.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/feedback-page/client"
	"github.com/danielhkuo/feedback-page/models"
	"github.com/danielhkuo/feedback-page/rating"
)

func main() {
	_ = godotenv.Load()

	fs := flag.NewFlagSet("kiosk", flag.ExitOnError)
	apiURL := fs.String("api", envOr("FEEDBACK_API_URL", "http://localhost:3318/api"), "API base URL including base path")
	anonKey := fs.String("anon-key", os.Getenv("ANON_KEY"), "project anon key")
	businessID := fs.String("business", models.DemoBusinessID, "business ID to collect feedback for")
	_ = fs.Parse(os.Args[1:])

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		// A second signal gets the default behaviour and kills the process.
		<-ctx.Done()
		stop()
	}()

	api := client.New(*apiURL, *anonKey)
	k := newKiosk(os.Stdin, os.Stdout)
	for {
		err := k.serve(ctx, rating.NewFlow(api, *businessID))
		if errors.Is(err, io.EOF) || ctx.Err() != nil {
			return
		}
		if err != nil {
			slog.Error("kiosk session failed", "error", err)
			os.Exit(1)
		}
	}
}

type kiosk struct {
	lines <-chan inputLine
	out   io.Writer
}

type inputLine struct {
	text string
	err  error
}

// newKiosk reads in on its own goroutine so a prompt can be abandoned when
// the context is cancelled.
func newKiosk(in io.Reader, out io.Writer) *kiosk {
	lines := make(chan inputLine)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			lines <- inputLine{text: sc.Text()}
		}
		if err := sc.Err(); err != nil {
			lines <- inputLine{err: err}
		}
	}()
	return &kiosk{lines: lines, out: out}
}

// serve walks one customer through the rating page and the page it routes to.
func (k *kiosk) serve(ctx context.Context, flow *rating.Flow) error {
	if flow.Bootstrap(ctx) != rating.BootstrapOK {
		k.say("(could not reach the server; you can still leave feedback)")
	}

	var dest rating.Destination
	for {
		line, err := k.ask(ctx, "How was your experience? (1-5 stars)")
		if err != nil {
			return err
		}
		r, err := strconv.Atoi(line)
		if err != nil {
			k.say("Please enter a number from 1 to 5.")
			continue
		}
		if err := flow.Session().Select(r); err != nil {
			k.say("Please enter a number from 1 to 5.")
			continue
		}
		dest, err = flow.Session().Submit()
		if err != nil {
			k.say(err.Error())
			continue
		}
		break
	}

	switch dest {
	case rating.DestinationFeedback:
		return k.feedbackPage(ctx, flow)
	default:
		return k.thankYouPage(ctx, flow)
	}
}

func (k *kiosk) feedbackPage(ctx context.Context, flow *rating.Flow) error {
	k.say("We're sorry to hear that. Tell us what happened.")
	kind, err := k.ask(ctx, "Is this feedback or a suggestion? [f/s]")
	if err != nil {
		return err
	}
	var form rating.FeedbackForm
	if form.Name, err = k.ask(ctx, "Name (optional)"); err != nil {
		return err
	}
	if form.Email, err = k.ask(ctx, "Email (optional)"); err != nil {
		return err
	}
	for {
		if form.Comment, err = k.ask(ctx, "Comment"); err != nil {
			return err
		}
		var out rating.Outcome
		if strings.HasPrefix(strings.ToLower(kind), "s") {
			out = flow.SubmitSuggestion(ctx, form)
		} else {
			out = flow.SubmitFeedback(ctx, form)
		}
		k.say(out.Message)
		if out.OK {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

func (k *kiosk) thankYouPage(ctx context.Context, flow *rating.Flow) error {
	k.say("Thank you for your feedback!")
	if links := flow.ReviewLinks(ctx); len(links) > 0 {
		k.say("Would you share it publicly?")
		for _, l := range links {
			k.say(fmt.Sprintf("  %s: %s", l.Name, l.URL))
		}
	}

	comment, err := k.ask(ctx, "Anything else to add? (optional)")
	if err != nil {
		return err
	}
	if strings.TrimSpace(comment) != "" {
		k.say(flow.SubmitAdditionalComment(ctx, comment).Message)
	}

	join, err := k.ask(ctx, "Join our list for updates? [y/N]")
	if err != nil {
		return err
	}
	if !strings.HasPrefix(strings.ToLower(join), "y") {
		return nil
	}
	var form rating.OptInForm
	if form.Name, err = k.ask(ctx, "Name"); err != nil {
		return err
	}
	if form.Email, err = k.ask(ctx, "Email"); err != nil {
		return err
	}
	if form.Phone, err = k.ask(ctx, "Phone (optional)"); err != nil {
		return err
	}
	k.say(flow.SubmitOptIn(ctx, form).Message)
	return nil
}

func (k *kiosk) ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprintf(k.out, "%s: ", prompt)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-k.lines:
		if !ok {
			return "", io.EOF
		}
		if line.err != nil {
			return "", line.err
		}
		return strings.TrimSpace(line.text), nil
	}
}

func (k *kiosk) say(msg string) {
	fmt.Fprintln(k.out, msg)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
