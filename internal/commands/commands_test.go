package commands

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subx/internal/config"
	"subx/internal/models"
)

type recordedRequest struct {
	path string
	csrf string
	body string
}

func setupCLI(t *testing.T, status int, body string) (*[]recordedRequest, *sync.Mutex) {
	t.Helper()

	var (
		mu       sync.Mutex
		requests []recordedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(r.Body)

		mu.Lock()
		requests = append(requests, recordedRequest{
			path: r.URL.Path,
			csrf: r.Header.Get(models.CSRFHeader),
			body: buf.String(),
		})
		mu.Unlock()

		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	t.Setenv(config.ConfigDirEnv, t.TempDir())

	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() {
		color.NoColor = noColor
		globalConfig = nil
	})

	globalConfig = &config.Config{ServerURL: srv.URL}
	return &requests, &mu
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	plainOutput, verbose = false, false
	methodType, cardNumber, expirationDate, cvc = "", "", "", ""
	validateCard = false
	serverURL, timeoutSeconds = "", 0

	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSubscribeCommand_Success(t *testing.T) {
	requests, mu := setupCLI(t, http.StatusOK, `{"status":"ok"}`)

	_, err := execute(t, "cookie", "set", "sessionid=1; csrftoken=cli-token")
	require.NoError(t, err)

	out, err := execute(t, "subscribe", "gold", "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, `Success: {"status":"ok"}`)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, *requests, 1)
	req := (*requests)[0]
	assert.Equal(t, models.SubscribePath, req.path)
	assert.Equal(t, "cli-token", req.csrf)
	assert.JSONEq(t, `{"plan_name":"gold","payment_details":{"method_type":"credit_card","card_number":"4242-4242-4242-4242","expiration_date":"12/25","cvc":"123"}}`, req.body)
}

func TestSubscribeCommand_CardFlags(t *testing.T) {
	requests, mu := setupCLI(t, http.StatusOK, `{}`)

	_, err := execute(t, "subscribe", "basic", "--plain", "--card-number", "5555-5555-5555-4444", "--cvc", "999")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, *requests, 1)
	assert.JSONEq(t, `{"plan_name":"basic","payment_details":{"method_type":"credit_card","card_number":"5555-5555-5555-4444","expiration_date":"12/25","cvc":"999"}}`, (*requests)[0].body)
}

func TestSubscribeCommand_ValidateRejectsBeforeSending(t *testing.T) {
	requests, mu := setupCLI(t, http.StatusOK, `{}`)

	_, err := execute(t, "subscribe", "basic", "--plain", "--validate", "--card-number", "4242-4242-4242-4241", "--expiration-date", "12/99")
	require.ErrorIs(t, err, models.ErrInvalidPaymentDetails)

	mu.Lock()
	defer mu.Unlock()
	assert.Empty(t, *requests)
}

func TestSubscribeCommand_Failure(t *testing.T) {
	setupCLI(t, http.StatusInternalServerError, `{"detail":"boom"}`)

	out, err := execute(t, "subscribe", "gold", "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "Failure: network response was not ok")
}

func TestLifecycleCommands(t *testing.T) {
	requests, mu := setupCLI(t, http.StatusOK, `{"success":true}`)

	for _, args := range [][]string{
		{"cancel", "--plain"},
		{"renew", "--plain"},
		{"change-plan", "premium", "--plain"},
	} {
		out, err := execute(t, args...)
		require.NoError(t, err)
		assert.Contains(t, out, `Success: {"success":true}`)
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, *requests, 3)
	assert.Equal(t, models.CancelPath, (*requests)[0].path)
	assert.Equal(t, models.RenewPath, (*requests)[1].path)
	assert.Equal(t, models.ChangePlanPath, (*requests)[2].path)
	assert.JSONEq(t, `{"plan_name":"premium"}`, (*requests)[2].body)
}

func TestCookieCommands(t *testing.T) {
	setupCLI(t, http.StatusOK, `{}`)

	out, err := execute(t, "cookie", "set", "sessionid=only")
	require.NoError(t, err)
	assert.Contains(t, out, "no csrftoken cookie found")

	_, err = execute(t, "cookie", "set", "a=1; csrftoken=hello%20there")
	require.NoError(t, err)

	out, err = execute(t, "cookie", "get", "csrftoken")
	require.NoError(t, err)
	assert.Equal(t, "hello there", strings.TrimSpace(out))

	_, err = execute(t, "cookie", "get", "missing")
	require.ErrorIs(t, err, models.ErrCookieNotFound)

	_, err = execute(t, "cookie", "clear")
	require.NoError(t, err)

	_, err = execute(t, "cookie", "get", "csrftoken")
	require.ErrorIs(t, err, models.ErrCookieNotFound)
}

func TestCookieSet_CreatesConfigDir(t *testing.T) {
	setupCLI(t, http.StatusOK, `{}`)
	dir := filepath.Join(t.TempDir(), "fresh", ".subx")
	t.Setenv(config.ConfigDirEnv, dir)

	_, err := execute(t, "cookie", "set", "csrftoken=abc")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	out, err := execute(t, "cookie", "get", "csrftoken")
	require.NoError(t, err)
	assert.Equal(t, "abc", strings.TrimSpace(out))
}

func TestConfigCommands(t *testing.T) {
	setupCLI(t, http.StatusOK, `{}`)
	dir := os.Getenv(config.ConfigDirEnv)

	out, err := execute(t, "config", "init", "--server-url", "http://billing.test")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully.")

	out, err = execute(t, "config", "get", "server-url")
	require.NoError(t, err)
	assert.Equal(t, "http://billing.test", strings.TrimSpace(out))

	_, err = execute(t, "config", "set", "--timeout", "20")
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(dir, "config.json"))
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.TimeoutSeconds)

	out, err = execute(t, "config", "paths")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "config.json"))
	assert.Contains(t, out, filepath.Join(dir, "cookies"))

	_, err = execute(t, "config", "get", "nope")
	assert.Error(t, err)
}
