package main

import "github.com/killallgit/waveform-comments/cmd"

// @title           Waveform Comments API
// @version         1.0.0
// @description     Time-anchored comments and markers for audio tracks
// @contact.name    API Support
// @contact.url     https://github.com/killallgit/waveform-comments
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 HS256 bearer token issued by the token command
func main() {
	cmd.Execute()
}
