// @title           EssayLab API
// @version         1.0
// @description     Backend for the EssayLab college-application essay editor.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /api/v1

package main

import "essaylab_backend/internal/app"

func main() {
	app.Run()
}
