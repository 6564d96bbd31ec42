package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/N4171k/45DOC/internal/completion"
	"github.com/N4171k/45DOC/internal/models"
	"github.com/N4171k/45DOC/internal/services"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const customArg = "custom"

func registerCommands(root *cobra.Command) {
	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password (CODESTREAK_PASSWORD, or prompted)")

	for _, cmd := range []*cobra.Command{submitCmd, customCmd, reviewCmd} {
		cmd.Flags().StringP("file", "f", "", "file with your solution, or - for stdin")
		cmd.Flags().StringP("language", "l", "", "programming language of the solution")
		cmd.Flags().String("github", "", "link to the solution on GitHub")
	}
	submitCmd.Flags().Bool("new", false, "overwrite an earlier submission")
	customCmd.Flags().Bool("new", false, "overwrite an earlier submission")
	customCmd.Flags().String("problem", "", "the problem you solved (at least 10 characters)")
	reviewCmd.Flags().Int("day", 0, "attach the review to this day's completion")
	reviewCmd.Flags().String("difficulty", "", "difficulty (or custom) of the completion to attach to")

	for _, cmd := range []*cobra.Command{streakCmd, statsCmd} {
		cmd.Flags().String("tz", "", "IANA time zone for calendar days (default local)")
	}

	root.AddCommand(loginCmd, logoutCmd, whoamiCmd, todayCmd, submitCmd, customCmd,
		resetCmd, streakCmd, statsCmd, reviewCmd, syncCmd)
}

// withApp opens the app for the duration of fn.
func withApp(fn func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(ctx, a, cmd, args)
	}
}

func parseDayArg(s string) (int, error) {
	day, err := strconv.Atoi(s)
	if err != nil || day < 1 {
		return 0, fmt.Errorf("day must be a positive number, got %q", s)
	}
	return day, nil
}

func parseDifficultyArg(s string) (models.Difficulty, error) {
	d := models.Difficulty(strings.ToLower(s))
	if !d.Valid() {
		return "", fmt.Errorf("difficulty must be easy, medium or hard, got %q", s)
	}
	return d, nil
}

// keyFor is the cache key of a day's tier, or of its custom entry.
func keyFor(day int, difficulty string) (string, error) {
	if strings.EqualFold(difficulty, customArg) {
		return completion.CustomChallengeID(day), nil
	}
	d, err := parseDifficultyArg(difficulty)
	if err != nil {
		return "", err
	}
	return completion.Key(strconv.Itoa(day), d), nil
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown time zone %q", name)
	}
	return loc, nil
}

func readPassword(in io.Reader) (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and remember the session on this machine",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		if email == "" {
			return errors.New("--email is required")
		}
		password, _ := cmd.Flags().GetString("password")
		if password == "" {
			password = viper.GetString("password")
		}
		if password == "" {
			var err error
			if password, err = readPassword(cmd.InOrStdin()); err != nil {
				return err
			}
		}
		s, err := a.sessions.Login(ctx, email, password)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", s.Name, s.Email)
		return nil
	}),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke the session and forget it",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		if err := a.sessions.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	}),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		if !a.session.Authenticated() {
			fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
			return nil
		}
		role := "member"
		if a.session.IsAdmin {
			role = "admin"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> (%s)\n", a.session.Name, a.session.Email, role)
		return nil
	}),
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's challenge and what you have completed",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		ch, err := a.client.Today(ctx)
		if err != nil {
			return err
		}
		var doc map[string]completion.Record
		if a.session.Authenticated() {
			doc = a.store.All(ctx, a.session.Profile())
		}
		printChallenge(cmd.OutOrStdout(), ch, doc)
		return nil
	}),
}

func printChallenge(w io.Writer, ch models.Challenge, doc map[string]completion.Record) {
	fmt.Fprintf(w, "Day %d: %s\n", ch.Day, ch.Title)
	if ch.Description != "" {
		fmt.Fprintf(w, "%s\n", ch.Description)
	}
	order := map[models.Difficulty]int{models.DifficultyEasy: 0, models.DifficultyMedium: 1, models.DifficultyHard: 2}
	qs := append([]models.Question(nil), ch.Questions...)
	sort.Slice(qs, func(i, j int) bool { return order[qs[i].Difficulty] < order[qs[j].Difficulty] })
	for _, q := range qs {
		mark := " "
		if _, ok := doc[completion.Key(strconv.Itoa(ch.Day), q.Difficulty)]; ok {
			mark = "x"
		}
		fmt.Fprintf(w, "  [%s] %-6s %s  %s\n", mark, q.Difficulty, q.Title, q.Link)
	}
	mark := " "
	if _, ok := doc[completion.CustomChallengeID(ch.Day)]; ok {
		mark = "x"
	}
	fmt.Fprintf(w, "  [%s] custom code of your choice\n", mark)
}

type solutionFlags struct {
	code, language, github string
	resubmit               bool
}

func readSolutionFlags(cmd *cobra.Command) (solutionFlags, error) {
	var f solutionFlags
	path, _ := cmd.Flags().GetString("file")
	code, err := readCode(path)
	if err != nil {
		return f, err
	}
	f.code = code
	f.language, _ = cmd.Flags().GetString("language")
	f.github, _ = cmd.Flags().GetString("github")
	if cmd.Flags().Lookup("new") != nil {
		f.resubmit, _ = cmd.Flags().GetBool("new")
	}
	return f, nil
}

var submitCmd = &cobra.Command{
	Use:   "submit <day> <easy|medium|hard>",
	Short: "Submit a solution for a day's question",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		if err := a.requireLogin(); err != nil {
			return err
		}
		day, err := parseDayArg(args[0])
		if err != nil {
			return err
		}
		difficulty, err := parseDifficultyArg(args[1])
		if err != nil {
			return err
		}
		sol, err := readSolutionFlags(cmd)
		if err != nil {
			return err
		}
		challengeID, q, err := a.client.Question(ctx, day, difficulty)
		if err != nil {
			return err
		}

		key := completion.Key(challengeID, difficulty)
		rec, err := a.submitDraft(ctx, key, sol.resubmit, func() (completion.Record, error) {
			return a.flow.Submit(ctx, a.session, services.Draft{
				ChallengeID:   challengeID,
				QuestionTitle: q.Title,
				Difficulty:    difficulty,
				Code:          sol.code,
				Language:      sol.language,
				GithubLink:    sol.github,
			})
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Submitted %q (%s) for day %d\n", rec.QuestionTitle, rec.Difficulty, day)
		return nil
	}),
}

var customCmd = &cobra.Command{
	Use:   "custom <day>",
	Short: "Submit code of your choice for a day",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		if err := a.requireLogin(); err != nil {
			return err
		}
		day, err := parseDayArg(args[0])
		if err != nil {
			return err
		}
		sol, err := readSolutionFlags(cmd)
		if err != nil {
			return err
		}
		problem, _ := cmd.Flags().GetString("problem")

		rec, err := a.submitDraft(ctx, completion.CustomChallengeID(day), sol.resubmit, func() (completion.Record, error) {
			return a.flow.SubmitCustom(ctx, a.session, services.CustomDraft{
				Day:        day,
				Problem:    problem,
				Code:       sol.code,
				Language:   sol.language,
				GithubLink: sol.github,
			})
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Submitted custom solution %q for day %d\n", rec.QuestionTitle, day)
		return nil
	}),
}

var resetCmd = &cobra.Command{
	Use:   "reset <day> <easy|medium|hard|custom>",
	Short: "Allow a new submission for a completed question",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		if err := a.requireLogin(); err != nil {
			return err
		}
		day, err := parseDayArg(args[0])
		if err != nil {
			return err
		}
		key, err := keyFor(day, args[1])
		if err != nil {
			return err
		}
		if _, ok := a.store.Get(ctx, a.session.Profile(), key); !ok {
			return fmt.Errorf("nothing submitted for %s yet", key)
		}
		if err := a.markResubmit(key); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Reset %s; your next submission will replace it\n", key)
		return nil
	}),
}

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show your current streak",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		if err := a.requireLogin(); err != nil {
			return err
		}
		tz, _ := cmd.Flags().GetString("tz")
		loc, err := loadLocation(tz)
		if err != nil {
			return err
		}
		doc := a.store.All(ctx, a.session.Profile())
		n := services.StreakFromRecords(doc, time.Now().In(loc))
		unit := "days"
		if n == 1 {
			unit = "day"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Current streak: %d %s\n", n, unit)
		return nil
	}),
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show completion counts per difficulty",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		if err := a.requireLogin(); err != nil {
			return err
		}
		tz, _ := cmd.Flags().GetString("tz")
		loc, err := loadLocation(tz)
		if err != nil {
			return err
		}
		st := services.Stats(a.store.All(ctx, a.session.Profile()), time.Now().In(loc))
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Easy:   %d\nMedium: %d\nHard:   %d\nCustom: %d\nTotal:  %d\nStreak: %d\n",
			st.Easy, st.Medium, st.Hard, st.Custom, st.Total, st.Streak)
		return nil
	}),
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Get AI feedback on a solution",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		if err := a.requireLogin(); err != nil {
			return err
		}
		sol, err := readSolutionFlags(cmd)
		if err != nil {
			return err
		}
		day, _ := cmd.Flags().GetInt("day")
		difficulty, _ := cmd.Flags().GetString("difficulty")
		var key string
		if day > 0 || difficulty != "" {
			if key, err = keyFor(day, difficulty); err != nil {
				return err
			}
		}

		review, err := a.client.Review(ctx, services.ReviewRequest{
			Code:       sol.code,
			Language:   sol.language,
			GithubLink: sol.github,
		})
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Grade: %s\n\n%s\n", review.Grade, review.Feedback)

		if key != "" {
			if _, err := a.flow.AttachReview(ctx, a.session.Profile(), key, review); err != nil {
				return err
			}
			fmt.Fprintf(w, "\nSaved with your %s completion.\n", key)
		}
		return nil
	}),
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Rebuild the local cache from your submissions on the server",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		doc, err := a.flow.Reconcile(ctx, a.session)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Synced %d completions\n", len(doc))
		return nil
	}),
}
