// Command client is a small command-line client for the idle-keeper server.
//
// It drives the full account lifecycle over the REST API: register, login,
// session check, progress sync, logout, and the public recent-names list.
// The session token obtained at
// login is persisted in a local file with owner-only permissions and attached
// to subsequent requests as a bearer token.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-idle-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const tokenFileMode = 0o600

func main() {
	address := flag.String("a", "http://localhost:8080", "server base URL")
	username := flag.String("u", "", "username")
	password := flag.String("p", "", "password")
	tokenFile := flag.String("t", defaultTokenFile(), "session token file")
	version := flag.Bool("version", false, "print build info and exit")
	flag.Parse()

	if *version {
		printBuildInfo()
		return
	}

	command := flag.Arg(0)
	if command == "" {
		fmt.Fprintln(os.Stderr, "usage: client [flags] register|login|check|sync|logout|names")
		flag.PrintDefaults()
		os.Exit(2)
	}

	c := &apiClient{
		rest:      resty.New().SetBaseURL(strings.TrimRight(*address, "/")),
		tokenFile: *tokenFile,
	}

	var err error
	switch command {
	case "register":
		err = c.register(*username, *password)
	case "login":
		err = c.login(*username, *password)
	case "check":
		err = c.check()
	case "sync":
		err = c.sync()
	case "logout":
		err = c.logout()
	case "names":
		err = c.names()
	default:
		err = fmt.Errorf("unknown command %q", command)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", command, err)
		os.Exit(1)
	}
}

type apiClient struct {
	rest      *resty.Client
	tokenFile string
}

func (c *apiClient) register(username, password string) error {
	var okResp models.OKResponse
	var errResp models.ErrorResponse

	resp, err := c.rest.R().
		SetBody(models.AuthRequest{Username: username, Password: password}).
		SetResult(&okResp).
		SetError(&errResp).
		Post("/api/user/register")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return errors.New(errResp.Error)
	}

	// mirror the name onto the public recent-registrations list; the list is
	// cosmetic, so a failed push does not fail the registration
	if _, err := c.rest.R().
		SetBody(models.UsernameRequest{Username: username}).
		Post("/api/usernames"); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not publish name: %v\n", err)
	}

	fmt.Println("registered; now log in")
	return nil
}

func (c *apiClient) names() error {
	var namesResp models.UsernamesResponse

	resp, err := c.rest.R().
		SetResult(&namesResp).
		Get("/api/usernames")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("unexpected status %s", resp.Status())
	}

	if len(namesResp.Usernames) == 0 {
		fmt.Println("no names yet")
		return nil
	}
	for _, entry := range namesResp.Usernames {
		fmt.Printf("%s\t%s\n", entry.SeenAt.Local().Format(time.RFC822), entry.Name)
	}
	return nil
}

func (c *apiClient) login(username, password string) error {
	var loginResp models.LoginResponse
	var errResp models.ErrorResponse

	resp, err := c.rest.R().
		SetBody(models.AuthRequest{Username: username, Password: password}).
		SetResult(&loginResp).
		SetError(&errResp).
		Post("/api/user/login")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return errors.New(errResp.Error)
	}

	if err := c.saveToken(loginResp.Token); err != nil {
		return fmt.Errorf("saving session token: %w", err)
	}

	fmt.Printf("logged in as %s, session expires %s\n", loginResp.Name, loginResp.ExpiresAt.Local())
	return nil
}

func (c *apiClient) check() error {
	var checkResp models.SessionCheckResponse

	resp, err := c.authed().
		SetResult(&checkResp).
		Post("/api/session/check")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("unexpected status %s", resp.Status())
	}

	if !checkResp.OK {
		c.dropToken()
		fmt.Println("no active session")
		return nil
	}

	fmt.Printf("session for %s, expires %s\n", checkResp.Name, checkResp.ExpiresAt.Local())
	if p := checkResp.Progress; p != nil {
		fmt.Printf("level %d, %.0f/%.0f xp (%.1f xp/s)\n", p.Level, p.XP, p.XPPerLevel, p.XPPerSec)
	}
	return nil
}

func (c *apiClient) sync() error {
	var progressResp models.ProgressResponse
	var errResp models.ErrorResponse

	resp, err := c.authed().
		SetResult(&progressResp).
		SetError(&errResp).
		Post("/api/progress/sync")
	if err != nil {
		return err
	}
	if resp.IsError() {
		if errResp.Error != "" {
			return errors.New(errResp.Error)
		}
		return fmt.Errorf("unexpected status %s", resp.Status())
	}

	if progressResp.ForceLogout {
		c.dropToken()
		fmt.Println("logged in elsewhere; this session is over — final state:")
	}

	fmt.Printf("%s: level %d, %.0f/%.0f xp (%.1f xp/s)\n",
		progressResp.Name, progressResp.Level, progressResp.XP, progressResp.XPPerLevel, progressResp.XPPerSec)
	return nil
}

func (c *apiClient) logout() error {
	resp, err := c.authed().Post("/api/session/logout")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("unexpected status %s", resp.Status())
	}

	c.dropToken()
	fmt.Println("logged out")
	return nil
}

// authed returns a request with the stored session token attached, if any.
func (c *apiClient) authed() *resty.Request {
	r := c.rest.R()
	if token, err := os.ReadFile(c.tokenFile); err == nil && len(token) > 0 {
		r.SetAuthToken(strings.TrimSpace(string(token)))
	}
	return r
}

func (c *apiClient) saveToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(c.tokenFile), 0o700); err != nil {
		return err
	}
	return os.WriteFile(c.tokenFile, []byte(token), tokenFileMode)
}

func (c *apiClient) dropToken() {
	os.Remove(c.tokenFile)
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".idle-keeper-token"
	}
	return filepath.Join(home, ".idle-keeper", "token")
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
