package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mileusna/crontab"
	"golang.org/x/term"
	"menlo.ai/learning-client/app/domain/common"
	"menlo.ai/learning-client/app/domain/studentapi"
)

var (
	readPasswordFunc = term.ReadPassword // mockable
	waitFunc         = waitForSignal      // mockable

	errHelp = errors.New("help provided")

	errLoginRequired  = common.NewError("login_required", "not logged in, run: learnctl login -email EMAIL")
	errSessionExpired = common.NewError("session_expired", "session expired, run: learnctl login -email EMAIL")
)

type commandLine struct {
	app *Application
	out io.Writer
}

func newCommandLine(app *Application, out io.Writer) *commandLine {
	return &commandLine{app: app, out: out}
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -email EMAIL [-remember=false] [-form]  - log in; the password is prompted")
	fmt.Fprintln(cli.out, "  logout                                        - forget the token and cached data")
	fmt.Fprintln(cli.out, "  whoami                                        - show the logged in user")
	fmt.Fprintln(cli.out, "  assignments -student ID [-refresh]            - list assignments")
	fmt.Fprintln(cli.out, "  submit -assignment ID -url URL [-notes TEXT]  - submit an assignment")
	fmt.Fprintln(cli.out, "  leaderboard [-refresh]                        - show the XP leaderboard")
	fmt.Fprintln(cli.out, "  quiz -id ID                                   - show a quiz")
	fmt.Fprintln(cli.out, "  upload -file PATH -title TITLE [-api-key KEY] - extract concepts from a PDF")
	fmt.Fprintln(cli.out, "  cache-purge [-all]                            - drop expired (or all) cached responses")
	fmt.Fprintln(cli.out, "  health                                        - check the backend")
	fmt.Fprintln(cli.out, "  watch                                         - run the cache janitor and health checks until interrupted")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()
	if args[1] != "login" {
		cli.app.Navigator.Visit(args[1])
	}

	switch args[1] {
	case "login":
		cmd := cli.flagSet("login")
		email := cmd.String("email", "", "The account email. The password will be prompted next.")
		remember := cmd.Bool("remember", true, "Keep the token after this process exits.")
		form := cmd.Bool("form", false, "Use the OAuth2 password form endpoint.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *email == "" {
			cmd.Usage()
			return errHelp
		}
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(int(syscall.Stdin))
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			cmd.Usage()
			return errHelp
		}
		return cli.login(ctx, *email, string(pwd), *remember, *form)
	case "logout":
		cli.app.Auth.Logout(ctx)
		fmt.Fprintln(cli.out, "logged out")
		return nil
	case "whoami":
		user, err := cli.app.Auth.CurrentUser()
		if err != nil {
			return errLoginRequired
		}
		fmt.Fprintf(cli.out, "%s (%s)\n", user.Email, user.Role)
		return nil
	case "assignments":
		cmd := cli.flagSet("assignments")
		student := cmd.Int("student", 0, "The student id.")
		refresh := cmd.Bool("refresh", false, "Skip the cache.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *student <= 0 {
			cmd.Usage()
			return errHelp
		}
		return cli.authenticated(func() (any, error) {
			return cli.app.Student.GetAssignments(ctx, *student, *refresh)
		})
	case "submit":
		cmd := cli.flagSet("submit")
		assignment := cmd.Int("assignment", 0, "The assignment id.")
		url := cmd.String("url", "", "Where the work can be found.")
		notes := cmd.String("notes", "", "Notes for the teacher.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *assignment <= 0 || *url == "" {
			cmd.Usage()
			return errHelp
		}
		return cli.authenticated(func() (any, error) {
			return cli.app.Student.SubmitAssignment(ctx, *assignment, studentapi.Submission{
				SubmissionURL:   *url,
				SubmissionNotes: *notes,
			})
		})
	case "leaderboard":
		cmd := cli.flagSet("leaderboard")
		refresh := cmd.Bool("refresh", false, "Skip the cache.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.authenticated(func() (any, error) {
			return cli.app.Student.GetLeaderboard(ctx, *refresh)
		})
	case "quiz":
		cmd := cli.flagSet("quiz")
		id := cmd.Int("id", 0, "The quiz id.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *id <= 0 {
			cmd.Usage()
			return errHelp
		}
		return cli.authenticated(func() (any, error) {
			return cli.app.Quiz.Get(ctx, *id)
		})
	case "upload":
		cmd := cli.flagSet("upload")
		path := cmd.String("file", "", "The PDF to upload.")
		title := cmd.String("title", "", "The assignment title.")
		apiKey := cmd.String("api-key", "", "Optional AI provider key forwarded to the backend.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *path == "" || *title == "" {
			cmd.Usage()
			return errHelp
		}
		f, err := os.Open(*path)
		if err != nil {
			return err
		}
		defer f.Close()
		return cli.authenticated(func() (any, error) {
			return cli.app.PDF.ProcessPDF(ctx, *title, filepath.Base(*path), f, *apiKey)
		})
	case "cache-purge":
		cmd := cli.flagSet("cache-purge")
		all := cmd.Bool("all", false, "Drop every cached response, not only expired ones.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *all {
			cli.app.Cache.Invalidate(ctx, "")
			fmt.Fprintln(cli.out, "cache cleared")
			return nil
		}
		fmt.Fprintf(cli.out, "purged %d entries\n", cli.app.Janitor.PurgeExpired(ctx))
		return nil
	case "health":
		status := cli.app.Healthcheck.CheckBackend(ctx)
		if !status.Healthy {
			return common.NewError(common.CodeUnavailable, status.Error)
		}
		fmt.Fprintln(cli.out, "backend is healthy")
		return nil
	case "watch":
		ctab := crontab.New()
		defer ctab.Shutdown()
		if err := cli.app.Janitor.Start(ctx, ctab); err != nil {
			return err
		}
		if err := cli.app.Healthcheck.Start(ctx, ctab); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "watching, press Ctrl+C to stop")
		waitFunc(ctx)
		return nil
	default:
		cli.printUsage()
		return errHelp
	}
}

func waitForSignal(ctx context.Context) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
}

func (cli *commandLine) flagSet(name string) *flag.FlagSet {
	cmd := flag.NewFlagSet(name, flag.ContinueOnError)
	cmd.SetOutput(cli.out)
	return cmd
}

func (cli *commandLine) login(ctx context.Context, email, password string, remember, form bool) error {
	login := cli.app.Auth.Login
	if form {
		login = cli.app.Auth.LoginForm
	}
	result, err := login(ctx, email, password, remember)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "logged in as %s (%s)\n", email, result.Token.Role)
	if result.ReturnTo != "" {
		fmt.Fprintf(cli.out, "continue with: learnctl %s\n", result.ReturnTo)
	}
	return nil
}

// authenticated runs call for a logged in user and prints its result as JSON.
func (cli *commandLine) authenticated(call func() (any, error)) error {
	if !cli.app.Session.IsAuthenticated() {
		return errLoginRequired
	}
	result, err := call()
	if err != nil {
		return err
	}
	if !cli.app.Session.IsAuthenticated() {
		return errSessionExpired
	}
	enc := json.NewEncoder(cli.out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
