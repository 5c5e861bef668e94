package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"github.com/argcheck/argcheck/internal/analyzer"
)

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>argcheck — Schema Findings</title>
  <style>
    *, *::before, *::after { box-sizing: border-box; margin: 0; padding: 0; }

    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      background-color: #f8f9fa;
      color: #212529;
      min-height: 100vh;
      padding: 1.5rem;
    }

    @media (prefers-color-scheme: dark) {
      body { background-color: #1a1a2e; color: #e0e0e0; }
      table { border-color: #444; }
      th, td { border-color: #444; }
      th { background-color: #2d2d44; }
      .summary { color: #9a9ab0; }
    }

    h1 { margin-bottom: 0.5rem; font-size: 1.4rem; font-weight: 600; }
    .summary { margin-bottom: 1rem; color: #6c757d; font-size: 0.9rem; }

    table { border-collapse: collapse; width: 100%; border: 1px solid #dee2e6; }
    th, td {
      text-align: left;
      padding: 0.45rem 0.7rem;
      border: 1px solid #dee2e6;
      font-size: 0.88rem;
    }
    th { background-color: #e9ecef; font-weight: 600; }
    td.rule { font-family: ui-monospace, SFMono-Regular, Menlo, monospace; white-space: nowrap; }
    td.loc { font-family: ui-monospace, SFMono-Regular, Menlo, monospace; white-space: nowrap; }

    .empty { margin-top: 2rem; font-size: 1rem; }
  </style>
</head>
<body>
  <h1>argcheck — Schema Findings</h1>
  <div class="summary">
    {{.Target}} — {{.TypesAnalyzed}} schema type(s) analyzed, {{.TypesSkipped}} skipped,
    {{len .Findings}} finding(s). <a href="/findings.json">JSON</a>
  </div>
  {{if .Findings}}
  <table>
    <tr><th>Location</th><th>Type</th><th>Member</th><th>Rule</th><th>Message</th></tr>
    {{range .Findings}}
    <tr>
      <td class="loc">{{.Position.Filename}}:{{.Position.Line}}</td>
      <td>{{.Type}}</td>
      <td>{{.Member}}</td>
      <td class="rule">{{.Rule}}</td>
      <td>{{.Message}}</td>
    </tr>
    {{end}}
  </table>
  {{else}}
  <div class="empty">No schema inconsistencies found.</div>
  {{end}}
</body>
</html>`

// Serve renders the analysis result on a local HTTP server until ctx is
// cancelled. The same data is available as JSON under /findings.json.
func Serve(ctx context.Context, result *analyzer.Result, target string, port int, openBrowser bool, logger *slog.Logger) error {
	tmpl, err := template.New("findings").Parse(htmlTemplate)
	if err != nil {
		return fmt.Errorf("parsing HTML template: %w", err)
	}

	data := struct {
		Target        string
		TypesAnalyzed int
		TypesSkipped  int
		Findings      []analyzer.Finding
	}{
		Target:        target,
		TypesAnalyzed: result.TypesAnalyzed,
		TypesSkipped:  result.TypesSkipped,
		Findings:      result.Findings,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request received", "method", r.Method, "path", r.URL.Path)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := tmpl.Execute(w, data); err != nil {
			logger.Error("failed to render template", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
	})

	mux.HandleFunc("/findings.json", func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request received", "method", r.Method, "path", r.URL.Path)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result.Findings); err != nil {
			logger.Error("failed to encode findings", "error", err)
		}
	})

	addr := fmt.Sprintf(":%d", port)
	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	url := fmt.Sprintf("http://localhost:%d", port)
	logger.Info("starting HTTP server", "addr", url)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
		close(errCh)
	}()

	if openBrowser {
		openInBrowser(url, logger)
	}

	// Block until the context is cancelled or the server fails.
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTP server shutdown error: %w", err)
		}
		return nil
	}
}

// openInBrowser opens the given URL in the default system browser.
func openInBrowser(url string, logger *slog.Logger) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	default:
		logger.Warn("unsupported platform for opening browser", "os", runtime.GOOS)
		return
	}

	if err := cmd.Start(); err != nil {
		logger.Warn("failed to open browser", "error", err)
	}
}
