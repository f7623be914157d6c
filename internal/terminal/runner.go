// Package terminal walks the VIP transfer questionnaire on a line based
// terminal. Every step is a short series of prompts followed by a navigation
// prompt; file handles are local paths.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/junglebet-games/viptransfer/internal/hashutil"
	"github.com/junglebet-games/viptransfer/internal/wizard"
	"github.com/junglebet-games/viptransfer/internal/wizard/form"
)

// ErrQuit is returned when the applicant quits or the input ends.
var ErrQuit = errors.New("questionnaire quit")

type Config struct {
	Colored          bool
	AttestationDelay time.Duration
	SupportContact   string
	Ranks            wizard.RankCatalog
	Validator        *form.Validator
	UserID           int64
}

type Runner struct {
	Config

	in  *bufio.Scanner
	out io.Writer

	wizard *wizard.Wizard
	errs   form.Errors

	title *color.Color
	faint *color.Color
	bad   *color.Color
	good  *color.Color
}

func New(in io.Reader, out io.Writer, config Config) *Runner {
	if config.AttestationDelay <= 0 {
		config.AttestationDelay = wizard.DefaultAttestationDelay
	}
	if config.Ranks == nil {
		config.Ranks = wizard.DefaultRanks()
	}
	if config.Validator == nil {
		config.Validator = form.NewValidator()
	}

	r := &Runner{
		Config: config,
		in:     bufio.NewScanner(in),
		out:    out,
		wizard: wizard.New(),
		title:  color.New(color.FgCyan, color.Bold),
		faint:  color.New(color.Faint),
		bad:    color.New(color.FgRed),
		good:   color.New(color.FgGreen),
	}

	for _, c := range []*color.Color{r.title, r.faint, r.bad, r.good} {
		if config.Colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return r
}

// Run drives the questionnaire until the applicant reaches the receipt and
// declines to restart, quits, or ctx is done. It returns the reference code
// of the last submitted application, if any.
func (r *Runner) Run(ctx context.Context) (string, error) {
	var reference string
	for {
		if err := ctx.Err(); err != nil {
			return reference, err
		}

		if status := r.wizard.Status(); status.Terminal() {
			if err := r.terminalScreen(status); err != nil {
				return reference, err
			}
			continue
		}

		step := r.wizard.Current()
		r.header(step)
		if step == wizard.StepReceiptReview {
			reference = hashutil.Reference(r.UserID, time.Now())
			again, err := r.receipt(reference)
			if err != nil || !again {
				return reference, err
			}
			r.wizard.Restart()
			continue
		}

		if err := r.fill(ctx, step); err != nil {
			return reference, err
		}

		if err := r.navigate(step); err != nil {
			return reference, err
		}
	}
}

// Answers returns a snapshot of the collected answers.
func (r *Runner) Answers() wizard.Answers {
	return r.wizard.Answers()
}

func (r *Runner) Status() wizard.Status {
	return r.wizard.Status()
}

func (r *Runner) header(step wizard.Step) {
	_, _ = fmt.Fprintln(r.out)
	_, _ = r.title.Fprintf(r.out, "Step %d of %d: %s\n", r.wizard.Position(), r.wizard.Total(), step.Title())
	for _, f := range r.errs.Fields() {
		_, _ = r.bad.Fprintf(r.out, "  ! %s\n", r.errs[f])
	}
}

func (r *Runner) fill(ctx context.Context, step wizard.Step) error {
	switch step {
	case wizard.StepWelcome:
		return r.fillWelcome()
	case wizard.StepEligibilityForm:
		return r.fillEligibility()
	case wizard.StepStakeVerification:
		return r.fillStakeVerification(ctx)
	case wizard.StepPreparationAndIntegrity:
		return r.fillPreparation()
	case wizard.StepLimboChallenge:
		return r.fillLimbo()
	case wizard.StepActionProofs:
		r.println("Record a screen video of your 7-day wager statistics and prepare the Limbo bet screenshot.")
		return nil
	case wizard.StepAssetSubmission:
		return r.fillAssets()
	}

	return nil
}

// navigate asks where to go after a step was filled. Next runs the step
// check first; failures stay on the step and are listed in the header.
func (r *Runner) navigate(step wizard.Step) error {
	choice, err := r.ask("[n]ext, [b]ack or [q]uit", "n")
	if err != nil {
		return err
	}

	switch strings.ToLower(choice) {
	case "b", "back":
		r.errs = nil
		r.wizard.Retreat()
	case "q", "quit":
		return ErrQuit
	default:
		r.errs = r.Validator.Step(step, r.wizard.Answers())
		if step == wizard.StepPreparationAndIntegrity && r.wizard.Answers().Available == wizard.TriNo {
			r.errs = nil
			r.wizard.MarkUnavailable()
			return nil
		}
		if !r.errs.OK() {
			return nil
		}
		r.wizard.Advance()
	}

	return nil
}

func (r *Runner) terminalScreen(status wizard.Status) error {
	e := wizard.Explain(status, r.wizard.Answers())
	_, _ = fmt.Fprintln(r.out)
	_, _ = r.bad.Fprintln(r.out, e.Title)
	r.println(e.Body)
	r.support()

	choice, err := r.ask("[b]ack, [r]estart or [q]uit", "r")
	if err != nil {
		return err
	}

	switch strings.ToLower(choice) {
	case "b", "back":
		r.wizard.Retreat()
	case "q", "quit":
		return ErrQuit
	default:
		r.errs = nil
		r.wizard.Restart()
	}

	return nil
}

func (r *Runner) receipt(reference string) (bool, error) {
	a := r.wizard.Answers()
	_, _ = r.good.Fprintf(r.out, "Thank you, %s! Your application was submitted.\n", a.Username)
	r.println("Reference: " + reference)
	r.println("A confirmation will be sent to " + a.Email + ". Support reviews every application manually.")
	r.support()

	choice, err := r.ask("Start a new application? [y/N]", "n")
	if err != nil {
		if errors.Is(err, ErrQuit) {
			return false, nil
		}
		return false, err
	}

	return isYes(choice), nil
}

func (r *Runner) support() {
	if r.SupportContact != "" {
		_, _ = r.faint.Fprintf(r.out, "Support: %s\n", r.SupportContact)
	}
}

func (r *Runner) fillWelcome() error {
	a := r.wizard.Answers()
	username, err := r.ask("JungleBet username", a.Username)
	if err != nil {
		return err
	}
	email, err := r.ask("JungleBet email", a.Email)
	if err != nil {
		return err
	}
	confirmed, err := r.askTri("I have read the transfer rules", checked(a.RulesConfirmed))
	if err != nil {
		return err
	}

	return r.update(
		wizard.FieldUsername, strings.TrimSpace(username),
		wizard.FieldEmail, strings.TrimSpace(email),
		wizard.FieldRulesConfirmed, confirmed == wizard.TriYes,
	)
}

func (r *Runner) fillEligibility() error {
	a := r.wizard.Answers()
	names := make([]string, 0, len(wizard.Platforms))
	for _, p := range wizard.Platforms {
		names = append(names, string(p))
	}

	i, err := r.choose("Transferring platform", names, string(a.Platform))
	if err != nil {
		return err
	}

	platform := wizard.Platforms[i]
	if platform != a.Platform {
		if err := r.update(wizard.FieldPlatform, platform, wizard.FieldRank, ""); err != nil {
			return err
		}
		if !platform.Supported() {
			if err := r.update(
				wizard.FieldPlatformUsername, "",
				wizard.FieldTotalWagered, wizard.Amount{},
				wizard.FieldRecentWager, wizard.TriUnset,
				wizard.FieldSelfExcluded, wizard.TriUnset,
			); err != nil {
				return err
			}
		}
		a = r.wizard.Answers()
	}

	if !platform.Supported() {
		return nil
	}

	username, err := r.ask("Username on "+string(platform), a.PlatformUsername)
	if err != nil {
		return err
	}

	options := r.Ranks.Options(platform)
	if len(options) == 0 {
		return fmt.Errorf("%s: no ranks configured", platform)
	}
	labels := make([]string, 0, len(options))
	for _, o := range options {
		labels = append(labels, o.Label)
	}
	current := ""
	for _, o := range options {
		if o.Value == a.Rank {
			current = o.Label
		}
	}
	rank, err := r.choose("VIP rank", labels, current)
	if err != nil {
		return err
	}

	wager, err := r.askAmount("Total lifetime wager in USD", a.TotalWagered)
	if err != nil {
		return err
	}
	recent, err := r.askTri("Wagered over "+wizard.FormatUSD(wizard.NewAmount(wizard.MinRecentWager))+" in the last 7 days", a.RecentWager)
	if err != nil {
		return err
	}
	excluded, err := r.askTri("Self-excluded or banned on any platform in the last 6 months", a.SelfExcluded)
	if err != nil {
		return err
	}

	return r.update(
		wizard.FieldPlatformUsername, strings.TrimSpace(username),
		wizard.FieldRank, options[rank].Value,
		wizard.FieldTotalWagered, wager,
		wizard.FieldRecentWager, recent,
		wizard.FieldSelfExcluded, excluded,
	)
}

func (r *Runner) fillStakeVerification(ctx context.Context) error {
	r.wizard.EnterStakeVerification()
	if r.wizard.Answers().Attestation.Status != wizard.AttestationSuccess {
		r.println("Post '" + wizard.StakeProofPhrase + "' in the Stake.com chat, then confirm here.")
		for {
			posted, err := r.askTri("I have posted the phrase", wizard.TriUnset)
			if err != nil {
				return err
			}
			if posted == wizard.TriYes {
				break
			}
		}

		r.wizard.BeginAttestation()
		_, _ = r.faint.Fprintln(r.out, "Processing your confirmation...")
		select {
		case <-time.After(r.AttestationDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
		r.wizard.CompleteAttestation()
	}

	at := r.wizard.Answers().Attestation
	_, _ = r.good.Fprintf(r.out, "Verified rank: %s, verified wager: %s\n", at.Rank, wizard.FormatUSD(at.Wager))
	return nil
}

func (r *Runner) fillPreparation() error {
	a := r.wizard.Answers()
	available, err := r.askTri("Are you available for the next 30 minutes", a.Available)
	if err != nil {
		return err
	}
	if err := r.update(wizard.FieldAvailable, available); err != nil {
		return err
	}
	if available == wizard.TriNo {
		return r.update(
			wizard.FieldProofsPrepared, false,
			wizard.FieldIntegrityConfirmed, false,
		)
	}
	if available != wizard.TriYes {
		return nil
	}

	proofs, err := r.askTri("I have prepared the Part 1 proofs", checked(a.ProofsPrepared))
	if err != nil {
		return err
	}
	integrity, err := r.askTri("I agree to the integrity guidelines", checked(a.IntegrityConfirmed))
	if err != nil {
		return err
	}

	return r.update(
		wizard.FieldProofsPrepared, proofs == wizard.TriYes,
		wizard.FieldIntegrityConfirmed, integrity == wizard.TriYes,
	)
}

func (r *Runner) fillLimbo() error {
	r.println("Place a Limbo bet on Stake.com and paste the bet link.")
	for {
		link, err := r.ask("Limbo bet link", r.wizard.Answers().LimboLink)
		if err != nil {
			return err
		}
		link = strings.TrimSpace(link)
		if err := r.update(wizard.FieldLimboLink, link); err != nil {
			return err
		}
		if form.LimboLinkReady(link) {
			_, _ = r.good.Fprintln(r.out, "Link looks good.")
			return nil
		}
		_, _ = r.bad.Fprintln(r.out, "The link must start with "+form.LimboLinkPrefix)
	}
}

func (r *Runner) fillAssets() error {
	for _, asset := range form.Assets {
		for {
			current := string(asset.Handle(r.wizard.Answers()))
			path, err := r.ask(asset.Label+" ("+asset.Kind+") path", current)
			if err != nil {
				return err
			}
			path = strings.TrimSpace(path)
			if path == "" {
				break
			}
			if _, err := os.Stat(path); err != nil {
				_, _ = r.bad.Fprintf(r.out, "Cannot read %s\n", path)
				continue
			}
			if err := r.update(asset.Field, wizard.FileHandle(path)); err != nil {
				return err
			}
			break
		}
	}

	return nil
}

// update sets field/value pairs in order.
func (r *Runner) update(pairs ...interface{}) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if err := r.wizard.Update(pairs[i].(wizard.Field), pairs[i+1]); err != nil {
			return fmt.Errorf("update: %w", err)
		}
	}
	return nil
}

func (r *Runner) println(s string) {
	_, _ = fmt.Fprintln(r.out, s)
}

// ask prints label and reads one line. An empty line keeps current.
func (r *Runner) ask(label, current string) (string, error) {
	if current != "" {
		_, _ = fmt.Fprintf(r.out, "%s %s: ", label, r.faint.Sprintf("[%s]", current))
	} else {
		_, _ = fmt.Fprintf(r.out, "%s: ", label)
	}

	if !r.in.Scan() {
		if err := r.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", ErrQuit
	}

	line := strings.TrimSpace(r.in.Text())
	if line == "" {
		return current, nil
	}
	return line, nil
}

func (r *Runner) askTri(label string, current wizard.Tri) (wizard.Tri, error) {
	def := ""
	if current.Answered() {
		def = current.String()
	}

	for {
		s, err := r.ask(label+" (y/n)", def)
		if err != nil {
			return current, err
		}
		switch {
		case isYes(s):
			return wizard.TriYes, nil
		case isNo(s):
			return wizard.TriNo, nil
		}
		_, _ = r.bad.Fprintln(r.out, "Please answer y or n.")
	}
}

func (r *Runner) askAmount(label string, current wizard.Amount) (wizard.Amount, error) {
	for {
		s, err := r.ask(label, current.String())
		if err != nil {
			return current, err
		}
		amount, err := wizard.ParseAmount(s)
		if err == nil {
			return amount, nil
		}
		_, _ = r.bad.Fprintln(r.out, "Please enter the amount as a number, e.g. 150000.")
	}
}

// choose lists options numbered from 1 and returns the picked index.
func (r *Runner) choose(label string, options []string, current string) (int, error) {
	for i, o := range options {
		_, _ = fmt.Fprintf(r.out, "  %d) %s\n", i+1, o)
	}

	def := ""
	for i, o := range options {
		if o == current {
			def = strconv.Itoa(i + 1)
		}
	}

	for {
		s, err := r.ask(label, def)
		if err != nil {
			return 0, err
		}
		if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		for i, o := range options {
			if strings.EqualFold(o, s) {
				return i, nil
			}
		}
		_, _ = r.bad.Fprintf(r.out, "Pick a number from 1 to %d.\n", len(options))
	}
}

// checked maps a checkbox to a prompt default: unchecked boxes ask again.
func checked(v bool) wizard.Tri {
	if v {
		return wizard.TriYes
	}
	return wizard.TriUnset
}

func isYes(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "y" || s == "yes"
}

func isNo(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "n" || s == "no"
}
