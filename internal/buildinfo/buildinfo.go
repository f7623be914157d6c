// Package buildinfo holds the project banner and links printed on startup.
package buildinfo

// ProjectVersion is overridden at build time with -ldflags "-X".
var ProjectVersion = "dev"

const (
	ProjectName  = "JungleBet VIP Transfer Assistant"
	BotFatherURL = "https://t.me/botfather"
	SiteURL      = "https://junglebet.com"

	Graffiti = `
   __                  __    ___      __
   \ \_   _ _ __   __ _| | __| _ ) ___| |_
    \ \ | | | '_ \ / _' | |/ _ \ _ \/ -_)  _|
 /\_/ / |_| | | | | (_| | |  __/___/\___|\__|
 \___/ \__,_|_| |_|\__, |_|\___|
                   |___/   VIP
`
	GreetingCLI = "%s %s\nsite: %s\n\n"
)
