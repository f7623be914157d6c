package questionnaire

import (
	"fmt"
	"html"
	"strconv"

	"github.com/enescakir/emoji"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/junglebet-games/viptransfer/internal/strpool"
	"github.com/junglebet-games/viptransfer/internal/vipbot/resource"
	"github.com/junglebet-games/viptransfer/internal/wizard"
	"github.com/junglebet-games/viptransfer/internal/wizard/form"
)

const (
	stakePreferencesURL = "https://stake.com/settings/preferences"
	limboMultiplier     = "722x"
	emptyValue          = "not set"
)

// view is everything one step message is rendered from.
type view struct {
	step      wizard.Step
	status    wizard.Status
	position  int
	total     int
	answers   wizard.Answers
	errs      form.Errors
	prompt    wizard.Field
	ranks     wizard.RankCatalog
	support   string
	reference string
}

func (v view) text() string {
	buf := strpool.Get()
	defer strpool.Put(buf)

	if v.status.Terminal() {
		e := wizard.Explain(v.status, v.answers)
		buf.WriteString(emoji.Warning.String())
		buf.WriteString(" <b>")
		buf.WriteString(html.EscapeString(e.Title))
		buf.WriteString("</b>\n\n")
		buf.WriteString(html.EscapeString(e.Body))
		if v.support != "" {
			buf.WriteString(fmt.Sprintf(resource.TextSupportContactMsg, html.EscapeString(v.support)))
		}
		return buf.String()
	}

	buf.WriteString(fmt.Sprintf(resource.TextStepHeader, v.position, v.total, html.EscapeString(v.step.Title())))
	switch v.step {
	case wizard.StepWelcome:
		v.writeWelcome(buf)
	case wizard.StepEligibilityForm:
		v.writeEligibility(buf)
	case wizard.StepStakeVerification:
		v.writeStakeVerification(buf)
	case wizard.StepPreparationAndIntegrity:
		v.writePreparation(buf)
	case wizard.StepLimboChallenge:
		v.writeLimboChallenge(buf)
	case wizard.StepActionProofs:
		v.writeActionProofs(buf)
	case wizard.StepAssetSubmission:
		v.writeAssetSubmission(buf)
	case wizard.StepReceiptReview:
		v.writeReceipt(buf)
	}

	for _, f := range v.errs.Fields() {
		buf.WriteString("\n")
		buf.WriteString(resource.TextErrorPrefix)
		buf.WriteString(html.EscapeString(v.errs[f]))
	}

	if v.prompt != "" {
		buf.WriteString("\n\n")
		buf.WriteString(fmt.Sprintf(resource.TextEnterValue, html.EscapeString(fieldLabel(v.prompt))))
	}

	return buf.String()
}

type writer interface {
	WriteString(s string) (int, error)
}

func writeValue(buf writer, label, value string) {
	if value == "" {
		value = emptyValue
	}
	buf.WriteString(label)
	buf.WriteString(": <b>")
	buf.WriteString(html.EscapeString(value))
	buf.WriteString("</b>\n")
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func triLabel(t wizard.Tri) string {
	if !t.Answered() {
		return ""
	}
	return t.String()
}

func amountLabel(a wizard.Amount) string {
	if !a.Valid {
		return ""
	}
	return wizard.FormatUSD(a)
}

func (v view) writeWelcome(buf writer) {
	buf.WriteString("Welcome to the JungleBet VIP transfer assistant. We will check whether your VIP status " +
		"can be transferred and what you need to prepare for support.\n\n" +
		"Please read the rules (" + resource.CmdRules + ") and tell us who you are on JungleBet.\n\n")
	writeValue(buf, "JungleBet username", v.answers.Username)
	writeValue(buf, "JungleBet email", v.answers.Email)
	writeValue(buf, "Rules read", yesNo(v.answers.RulesConfirmed))
}

func (v view) writeEligibility(buf writer) {
	buf.WriteString("Tell us about the platform you are transferring your VIP status from.\n\n")
	writeValue(buf, "Platform", string(v.answers.Platform))
	if v.answers.Platform == wizard.PlatformOther {
		buf.WriteString("\nTransfers are only accepted from Stake.com, BC.Game and Shuffle.\n")
		return
	}
	if !v.answers.Platform.Supported() {
		return
	}

	writeValue(buf, "Username on "+string(v.answers.Platform), v.answers.PlatformUsername)
	writeValue(buf, "VIP rank", v.answers.Rank)
	writeValue(buf, "Total wagered", amountLabel(v.answers.TotalWagered))
	writeValue(
		buf,
		"Wagered over "+wizard.FormatUSD(wizard.NewAmount(wizard.MinRecentWager))+" in the last 7 days",
		triLabel(v.answers.RecentWager),
	)
	writeValue(buf, "Self-excluded or banned on any platform in the last 12 months", triLabel(v.answers.SelfExcluded))
}

func (v view) writeStakeVerification(buf writer) {
	buf.WriteString("To attest to your Stake.com account ownership and status, please complete the " +
		"\"" + wizard.StakeProofPhrase + "\" proof:\n\n" +
		"1. Turn <b>Ghost Mode OFF</b> in your <a href=\"" + stakePreferencesURL + "\">Stake settings</a>. " +
		"This is temporary (~2 minutes).\n" +
		"2. In Stake.com's public chat (e.g. #sports or #challenges), send the exact phrase: <code>" +
		wizard.StakeProofPhrase + "</code>\n" +
		"3. You can re-enable Ghost Mode right after.\n\n" +
		"After posting the phrase, confirm below.\n\n")

	att := v.answers.Attestation
	switch att.Status {
	case wizard.AttestationVerifying:
		buf.WriteString(emoji.HourglassNotDone.String() + " " + resource.TextVerifyingMsg + "\n")
	case wizard.AttestationSuccess:
		buf.WriteString(emoji.CheckMarkButton.String() + " <b>Stake.com Attestation Confirmed</b>\n" +
			"The following self-reported details are considered attested for eligibility:\n")
		writeValue(buf, "Attested rank", att.Rank)
		writeValue(buf, "Attested total wager", wizard.FormatUSD(att.Wager))
	}
}

func (v view) writePreparation(buf writer) {
	buf.WriteString(emoji.Stopwatch.String() + " The next part of the application involves preparing information " +
		"and actions. This may take <b>30 minutes to 2 hours</b>.\n\n")
	writeValue(buf, "Available now", triLabel(v.answers.Available))

	switch v.answers.Available {
	case wizard.TriNo:
		buf.WriteString("\nNo problem! Please return when you have time. Progress is not saved, so you'll start over.\n")
	case wizard.TriYes:
		buf.WriteString("\n<b>Part 1: prepare this information</b> (all info and screenshots MUST be in English)\n" +
			"1. Profile screenshot showing username, VIP rank, VIP progress and total wagered.\n" +
			"2. Direct profile link with Ghost Mode / Private Mode disabled.\n" +
			"3. Your active Telegram handle.\n\n" +
			"<b>Integrity</b>: submitted proofs must be genuine and unedited. Altered or borrowed proofs " +
			"lead to permanent rejection.\n\n")
		writeValue(buf, "Part 1 proofs prepared", yesNo(v.answers.ProofsPrepared))
		writeValue(buf, "Integrity guidelines accepted", yesNo(v.answers.IntegrityConfirmed))
	}
}

func (v view) writeLimboChallenge(buf writer) {
	buf.WriteString("To begin, complete a specific challenge on Stake.com:\n\n" +
		"• Place a single <b>Limbo</b> wager with a payout multiplier of exactly <b>" + limboMultiplier + "</b>.\n" +
		"• The bet amount can be anything you are comfortable with.\n" +
		"• After the bet is complete, open its details page and send its full URL here.\n\n")
	writeValue(buf, "Direct bet link", v.answers.LimboLink)
	if form.LimboLinkReady(v.answers.LimboLink) {
		buf.WriteString("\n" + emoji.CheckMarkButton.String() + " You've provided the bet link. You can now move to the next step.\n")
	}
}

func (v view) writeActionProofs(buf writer) {
	buf.WriteString("<b>Required for the 7-Day Drip Bonus</b>\n" +
		"To verify your bonus eligibility, provide your 7-day wager history as the original email file.\n\n")
	if v.answers.Platform == wizard.PlatformStake {
		buf.WriteString("1. Go to \"Stats\" on Stake.com.\n" +
			"2. Request your 7-day wager history via email.\n" +
			"3. In your email client, find the email from Stake.\n" +
			"4. Use \"Download\", \"Save As\" or \"Show Original\" to save it as a file (usually .eml).\n")
		return
	}
	buf.WriteString("Instructions for " + html.EscapeString(string(v.answers.Platform)) + " will be provided by support.\n")
}

func (v view) writeAssetSubmission(buf writer) {
	buf.WriteString("Send each file to this chat. Photos and videos are matched automatically, " +
		"use the buttons to choose which file you are sending next.\n\n")
	for _, a := range form.Assets {
		mark := resource.TextUncheckedBox
		if a.Handle(v.answers).Present() {
			mark = resource.TextCheckedBox
		}
		buf.WriteString(mark + " " + html.EscapeString(a.Label) + " (" + html.EscapeString(a.Kind) + ")\n")
	}
}

func (v view) writeReceipt(buf writer) {
	buf.WriteString(emoji.PartyPopper.String() + " <b>Preliminary Steps Completed - Action Required</b>\n\n" +
		"Thank you for completing this guided process. Please now <b>send all prepared assets</b> " +
		"(screenshots, links, video) to our support team via official channels.\n\n" +
		"<b>What happens next</b>\n" +
		"• Once support receives your assets, they will begin review.\n" +
		"• This typically takes <b>3 - 5 business days</b>.\n" +
		"• The authenticity of submitted documents, particularly email-based proofs, will be carefully verified.\n" +
		"• Please do not resend or modify submissions during review unless requested.\n\n" +
		"Support will contact you with the outcome: approval with your VIP upgrade and, if applicable, " +
		"7-day drip bonus details, or the reason for rejection.\n")
	if v.reference != "" {
		buf.WriteString("\nYour reference: <code>" + v.reference + "</code>\n")
	}
	if v.support != "" {
		buf.WriteString(fmt.Sprintf(resource.TextSupportContactMsg, html.EscapeString(v.support)))
	}
}

func button(text, data string) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData(text, data)
}

func checkbox(label string, checked bool, field wizard.Field) tgbotapi.InlineKeyboardButton {
	mark := resource.TextUncheckedBox
	if checked {
		mark = resource.TextCheckedBox
	}
	return button(mark+" "+label, encodeData(actionToggle, string(field)))
}

func selected(label string, ok bool) string {
	if ok {
		return resource.TextSelectedOption + label
	}
	return label
}

func triRow(label string, field wizard.Field, value wizard.Tri) []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		button(selected(label+": Yes", value == wizard.TriYes), triData(field, wizard.TriYes)),
		button(selected("No", value == wizard.TriNo), triData(field, wizard.TriNo)),
	)
}

func askButton(label string, field wizard.Field) tgbotapi.InlineKeyboardButton {
	return button(emoji.Pen.String()+" "+label, encodeData(actionAsk, string(field)))
}

func (v view) navRow(next bool) []tgbotapi.InlineKeyboardButton {
	row := tgbotapi.NewInlineKeyboardRow()
	if v.position > 1 {
		row = append(row, button(resource.InlineBackText, encodeData(actionNav, navBack)))
	}
	if next {
		row = append(row, button(resource.InlineNextText, encodeData(actionNav, navNext)))
	}
	return row
}

func (v view) keyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	restart := tgbotapi.NewInlineKeyboardRow(button(resource.InlineRestartText, RestartData))

	if v.status.Terminal() {
		rows = append(rows,
			tgbotapi.NewInlineKeyboardRow(button(resource.InlineBackText, encodeData(actionNav, navBack))),
			restart,
		)
		return tgbotapi.NewInlineKeyboardMarkup(rows...)
	}

	a := v.answers
	switch v.step {
	case wizard.StepWelcome:
		rows = append(rows,
			tgbotapi.NewInlineKeyboardRow(checkbox("I have read the VIP transfer rules", a.RulesConfirmed, wizard.FieldRulesConfirmed)),
			tgbotapi.NewInlineKeyboardRow(askButton("Username", wizard.FieldUsername), askButton("Email", wizard.FieldEmail)),
			v.navRow(true),
		)
	case wizard.StepEligibilityForm:
		rows = append(rows, v.platformRows()...)
		if a.Platform.Supported() {
			rows = append(rows, v.rankRows()...)
			rows = append(rows,
				tgbotapi.NewInlineKeyboardRow(
					askButton("Platform username", wizard.FieldPlatformUsername),
					askButton("Total wager", wizard.FieldTotalWagered),
				),
				triRow("Wagered $1k+ in 7 days", wizard.FieldRecentWager, a.RecentWager),
				triRow("Self-excluded", wizard.FieldSelfExcluded, a.SelfExcluded),
			)
		}
		rows = append(rows, v.navRow(true))
	case wizard.StepStakeVerification:
		if a.Attestation.Status == wizard.AttestationPending {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				button("Confirm: I've Posted '"+wizard.StakeProofPhrase+"'", encodeData(actionAttest, "confirm")),
			))
		}
		rows = append(rows, v.navRow(a.Attestation.Status == wizard.AttestationSuccess))
	case wizard.StepPreparationAndIntegrity:
		rows = append(rows, triRow("Available now", wizard.FieldAvailable, a.Available))
		if a.Available == wizard.TriYes {
			rows = append(rows,
				tgbotapi.NewInlineKeyboardRow(checkbox("Part 1 proofs prepared", a.ProofsPrepared, wizard.FieldProofsPrepared)),
				tgbotapi.NewInlineKeyboardRow(checkbox("I agree to the integrity guidelines", a.IntegrityConfirmed, wizard.FieldIntegrityConfirmed)),
			)
		}
		rows = append(rows, v.navRow(true))
	case wizard.StepLimboChallenge:
		rows = append(rows,
			tgbotapi.NewInlineKeyboardRow(askButton("Bet link", wizard.FieldLimboLink)),
			v.navRow(true),
		)
	case wizard.StepActionProofs:
		rows = append(rows, v.navRow(true))
	case wizard.StepAssetSubmission:
		for _, asset := range form.Assets {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(askButton(asset.Label, asset.Field)))
		}
		rows = append(rows, v.navRow(true))
	case wizard.StepReceiptReview:
		rows = append(rows, restart)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (v view) platformRows() [][]tgbotapi.InlineKeyboardButton {
	var rows [][]tgbotapi.InlineKeyboardButton
	row := tgbotapi.NewInlineKeyboardRow()
	for _, p := range wizard.Platforms {
		row = append(row, button(selected(string(p), v.answers.Platform == p), encodeData(actionPlatform, string(p))))
		if len(row) == 2 {
			rows = append(rows, row)
			row = tgbotapi.NewInlineKeyboardRow()
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}

func (v view) rankRows() [][]tgbotapi.InlineKeyboardButton {
	var rows [][]tgbotapi.InlineKeyboardButton
	row := tgbotapi.NewInlineKeyboardRow()
	for i, o := range v.ranks.Options(v.answers.Platform) {
		row = append(row, button(selected(o.Value, v.answers.Rank == o.Value), encodeData(actionRank, strconv.Itoa(i))))
		if len(row) == 2 {
			rows = append(rows, row)
			row = tgbotapi.NewInlineKeyboardRow()
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}
