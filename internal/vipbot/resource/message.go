package resource

import "github.com/enescakir/emoji"

const (
	CmdStart    = "/start"
	CmdRules    = "/rules"
	CmdProfile  = "/profile"
	CmdFeedback = "/feedback"
	CmdBan      = "/ban"
)

// manager text messages
var (
	TextGreetingMsg = emoji.Robot.String() + " Hi, %s!\n\n" +
		"I am the <b>JungleBet VIP Transfer Assistant</b>. I will walk you through the eligibility questionnaire " +
		"for moving your VIP status from another platform to JungleBet.\n\n" +
		"Nothing you enter here is stored: if you leave, you start over.\n\n" +
		"<b>Commands:</b>\n" +
		"/start - show this message\n" +
		"/rules - transfer rules\n" +
		"/profile - your previous applications\n" +
		"/feedback - send feedback to the team"

	TextRulesMsg = emoji.Bookmark.String() + " <b>VIP transfer rules</b>\n\n" +
		"1. Transfers are accepted from Stake.com, BC.Game and Shuffle.\n" +
		"2. Your lifetime wager on the transferring platform must be at least <b>$100,000</b>.\n" +
		"3. You must not be self-excluded or banned on any platform.\n" +
		"4. Players who wagered over <b>$1,000</b> in the last 7 days can also claim the 7-day drip bonus " +
		"by completing the Limbo challenge and providing wager proofs.\n" +
		"5. All screenshots and documents must be in English and must not be altered.\n\n" +
		"Support reviews every application manually, usually within 3 - 5 business days."

	TextChatNotAllowed         = emoji.WomanGesturingNo.String() + " The assistant only works in private chats"
	TextBannedMsg              = emoji.CrossMark.String() + " Access to the assistant is restricted for your account"
	TextAdminRequiredMsg       = "This command requires admin rights"
	TextFeedbackMsg            = "Send your feedback in one message"
	TextFeedbackThanksMsg      = emoji.ThumbsUp.String() + " Thank you, your feedback was sent"
	TextFeedbackForwardMsg     = "Feedback from @%s: %s"
	TextBanMsg                 = "Send the @username to ban"
	TextBanUserNotFoundMsg     = "User not found: %s"
	TextBanAdminMsg            = "Admins cannot be banned"
	TextBanDoneMsg             = "User banned: %s"
	TextApplicationStartedMsg  = emoji.Rocket.String() + " Application started. Use the buttons under each step, or type your answers when asked."
	TextApplicationRunningMsg  = "You already have an application in progress, continue with the latest step message"
	TextLeavingSessionMsg      = emoji.ChequeredFlag.String() + " Application closed. Your answers were discarded."
	TextNoSessionMsg           = "You have no application in progress. Press " + StartApplicationButtonText + " to begin."
	TextApplicationTimeoutMsg  = emoji.BrokenHeart.String() + " The application timed out and your answers were discarded. You can start again at any time."
	TextApplicationFinishedMsg = emoji.PartyingFace.String() + " Thank you for choosing JungleBet!"
)

// questionnaire text messages
var (
	TextStepHeader        = "<b>Step %d of %d: %s</b>\n\n"
	TextEnterValue        = emoji.Pen.String() + " Send your %s"
	TextFieldSaved        = emoji.CheckMark.String() + " Saved"
	TextStaleKeyboard     = "This message is outdated, use the latest one"
	TextInvalidAmount     = "Please enter the amount as a number, e.g. 150000"
	TextUnexpectedFile    = "No file is expected right now"
	TextUnexpectedText    = "Use the buttons under the step message"
	TextFileSaved         = emoji.CheckMark.String() + " %s received"
	TextVerifyingMsg      = "Processing your confirmation..."
	TextRestartedMsg      = "Starting a new application"
	TextErrorPrefix       = emoji.CrossMark.String() + " "
	TextCheckedBox        = emoji.CheckMarkButton.String()
	TextUncheckedBox      = "⬜"
	TextSelectedOption    = emoji.CheckMark.String() + " "
	TextSupportContactMsg = "\n\nSupport: %s"
)
