package vipbot

import (
	"html"
	"strconv"

	"github.com/enescakir/emoji"
	outcomeModel "github.com/junglebet-games/viptransfer/internal/database/outcome/model"
	userModel "github.com/junglebet-games/viptransfer/internal/database/user/model"
	"github.com/junglebet-games/viptransfer/internal/strpool"
)

const dateLayout = "02 Jan 2006 15:04"

func renderProfile(u userModel.User, summary outcomeModel.Summary) string {
	buf := strpool.Get()
	defer strpool.Put(buf)

	disqualified := summary.ByStatus[outcomeModel.StatusDisqualifiedSelfExcluded] +
		summary.ByStatus[outcomeModel.StatusDisqualifiedPlatform] +
		summary.ByStatus[outcomeModel.StatusDisqualifiedWagerLow]

	buf.WriteString(emoji.Alien.String())
	buf.WriteString(" Profile <b>")
	buf.WriteString(html.EscapeString(u.FirstName))
	buf.WriteString("</b>\n\n")
	buf.WriteString(emoji.CardIndex.String())
	buf.WriteString(" Applications: ")
	buf.WriteString(strconv.Itoa(summary.Count))
	buf.WriteString("\n")
	buf.WriteString(emoji.Trophy.String())
	buf.WriteString(" Submitted: ")
	buf.WriteString(strconv.Itoa(summary.ByStatus[outcomeModel.StatusSubmitted]))
	buf.WriteString("\n")
	buf.WriteString(emoji.CrossMark.String())
	buf.WriteString(" Not eligible: ")
	buf.WriteString(strconv.Itoa(disqualified))
	buf.WriteString("\n")
	buf.WriteString(emoji.Stopwatch.String())
	buf.WriteString(" Paused or abandoned: ")
	buf.WriteString(strconv.Itoa(summary.ByStatus[outcomeModel.StatusUserUnavailable] +
		summary.ByStatus[outcomeModel.StatusAbandoned]))

	if summary.Count > 0 {
		last := summary.Last
		buf.WriteString("\n\nLast application: ")
		buf.WriteString(last.CreatedAt.Format(dateLayout))
		buf.WriteString(", ")
		buf.WriteString(string(last.Status))
		if last.Platform != "" {
			buf.WriteString(", ")
			buf.WriteString(html.EscapeString(last.Platform))
		}
		if last.Reference != "" {
			buf.WriteString("\nReference: <code>")
			buf.WriteString(last.Reference)
			buf.WriteString("</code>")
		}
	}

	return buf.String()
}
