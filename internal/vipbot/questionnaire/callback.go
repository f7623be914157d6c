package questionnaire

import (
	"strings"

	"github.com/junglebet-games/viptransfer/internal/wizard"
)

// callback data actions, encoded as "action:arg[:value]"
const (
	actionNav      = "nav"
	actionAsk      = "ask"
	actionToggle   = "tog"
	actionTri      = "tri"
	actionPlatform = "plat"
	actionRank     = "rank"
	actionAttest   = "att"

	navNext    = "next"
	navBack    = "back"
	navRestart = "restart"

	triYes = "yes"
	triNo  = "no"
)

// RestartData is the callback data of the restart button. The manager
// recognizes it on messages that outlived their session.
var RestartData = encodeData(actionNav, navRestart)

func encodeData(action string, args ...string) string {
	return strings.Join(append([]string{action}, args...), ":")
}

type callbackData struct {
	action string
	arg    string
	value  string
}

func decodeData(data string) callbackData {
	parts := strings.SplitN(data, ":", 3)
	cd := callbackData{action: parts[0]}
	if len(parts) > 1 {
		cd.arg = parts[1]
	}
	if len(parts) > 2 {
		cd.value = parts[2]
	}
	return cd
}

func triData(field wizard.Field, v wizard.Tri) string {
	value := triNo
	if v == wizard.TriYes {
		value = triYes
	}
	return encodeData(actionTri, string(field), value)
}
