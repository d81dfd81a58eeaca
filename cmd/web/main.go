package main

import (
	_ "embed"
	"html/template"
	"net"
	"net/http"
	"os"

	"github.com/charmbracelet/log"

	"github.com/tomz197/starfall/internal/config"
	"github.com/tomz197/starfall/internal/highscore"
)

const (
	defaultHost    = "0.0.0.0"
	defaultPort    = "8080"
	defaultDataApp = "starfall"
)

//go:embed index.html
var htmlPage string

var pageTemplate = template.Must(template.New("index").Funcs(template.FuncMap{
	"rank": func(i int) int { return i + 1 },
}).Parse(htmlPage))

// pageData is rendered by index.html.
type pageData struct {
	SSHHost string
	SSHPort string
	Scores  []highscore.Entry
}

// scoreSource returns the current board.
type scoreSource func() []highscore.Entry

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "starfall-web",
	})

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	sshPort := config.GetEnv("SSH_DISPLAY_PORT", "2222")

	scores := func() []highscore.Entry { return nil }
	backend, err := highscore.OpenGdata(config.GetEnv("STARFALL_DATA_APP", defaultDataApp))
	if err != nil {
		logger.Warn("leaderboard unavailable", "err", err)
	} else {
		// Re-read on every request: the SSH server writes the same storage.
		scores = func() []highscore.Entry {
			return highscore.NewStore(backend, logger).Entries()
		}
	}

	http.Handle("/", newHandler(sshHost, sshPort, scores, logger))

	addr := net.JoinHostPort(host, port)
	logger.Info("starting web server", "url", "http://"+addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

// newHandler serves the landing page with the leaderboard.
func newHandler(sshHost, sshPort string, scores scoreSource, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		data := pageData{SSHHost: sshHost, SSHPort: sshPort, Scores: scores()}
		if err := pageTemplate.Execute(w, data); err != nil {
			logger.Error("failed to render page", "err", err)
		}
	})
}
