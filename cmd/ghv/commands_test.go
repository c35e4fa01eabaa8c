package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/raphi011/ghv/internal/config"
	"github.com/raphi011/ghv/internal/log"
	"github.com/raphi011/ghv/internal/output"
	"github.com/raphi011/ghv/internal/pipeline"
)

// fakeGitHub serves one user, octocat, with two repositories and a fork.
func fakeGitHub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/users/octocat", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{
			"login": "octocat",
			"name": "The Octocat",
			"bio": "<b>hi</b>",
			"avatar_url": "https://avatars.githubusercontent.com/u/583231",
			"followers": 1500,
			"following": 9,
			"public_repos": 3,
			"html_url": "https://github.com/octocat",
			"repos_url": %q
		}`, srv.URL+"/users/octocat/repos")
	})
	mux.HandleFunc("/users/octocat/repos", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"name": "hello-world", "html_url": "https://github.com/octocat/hello-world", "owner": {"login": "octocat"}, "language": "Go", "stargazers_count": 2500, "forks_count": 10},
			{"name": "forked", "owner": {"login": "octocat"}, "fork": true},
			{"name": "linguist", "html_url": "https://github.com/octocat/linguist", "owner": {"login": "octocat"}}
		]`)
	})
	mux.HandleFunc("/repos/octocat/hello-world/readme", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "# Hello World\nline 2\nline 3\nline 4\nline 5\n")
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// testContext returns a context with config pointing at srv and a captured
// stdout.
func testContext(t *testing.T, srv *httptest.Server) (context.Context, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	if srv != nil {
		cfg.API.BaseURL = srv.URL
	}
	var out bytes.Buffer
	ctx := config.WithConfig(context.Background(), &cfg)
	ctx = log.WithLogger(ctx, log.New(&bytes.Buffer{}, false, true))
	ctx = output.WithPrinter(ctx, &out)
	return ctx, &out
}

func TestRunUser_Text(t *testing.T) {
	srv := fakeGitHub(t)
	ctx, out := testContext(t, srv)

	err := runUser(ctx, "octocat", userOptions{format: "text"})
	require.NoError(t, err)

	text := ansi.Strip(out.String())
	assert.Contains(t, text, "The Octocat")
	assert.Contains(t, text, "Repositories (3)")
	assert.Contains(t, text, "hello-world")
	assert.Contains(t, text, "line 4")
	assert.NotContains(t, text, "line 5")
	assert.NotContains(t, text, "forked")
	assert.Contains(t, text, "README not available")
}

func TestRunUser_JSON(t *testing.T) {
	srv := fakeGitHub(t)
	ctx, out := testContext(t, srv)

	require.NoError(t, runUser(ctx, "octocat", userOptions{format: "json"}))

	var snap pipeline.Snapshot
	require.NoError(t, json.Unmarshal(out.Bytes(), &snap))
	require.NotNil(t, snap.Profile)
	assert.Equal(t, "<b>hi</b>", snap.Profile.Bio)
	require.Len(t, snap.Cards, 2)
	require.NotNil(t, snap.Cards[0].Readme)
	assert.True(t, snap.Cards[0].Readme.Truncated)
}

func TestRunUser_YAMLNoReadme(t *testing.T) {
	srv := fakeGitHub(t)
	ctx, out := testContext(t, srv)

	require.NoError(t, runUser(ctx, "octocat", userOptions{format: "yaml", noReadme: true}))

	var snap pipeline.Snapshot
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &snap))
	require.Len(t, snap.Cards, 2)
	assert.Nil(t, snap.Cards[0].Readme)
}

func TestRunUser_HTMLToFile(t *testing.T) {
	srv := fakeGitHub(t)
	ctx, out := testContext(t, srv)
	path := filepath.Join(t.TempDir(), "pages", "octocat.html")

	require.NoError(t, runUser(ctx, "octocat", userOptions{format: "html", outFile: path}))
	assert.Empty(t, out.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	page := string(data)
	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	assert.Contains(t, page, "&lt;b&gt;hi&lt;/b&gt;")
	assert.NotContains(t, page, "<b>hi</b>")
	assert.Contains(t, page, "<details>")
}

func TestRunUser_NotFound(t *testing.T) {
	srv := fakeGitHub(t)
	ctx, out := testContext(t, srv)

	err := runUser(ctx, "ghost", userOptions{format: "text"})
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, ansi.Strip(out.String()), `User "ghost" not found on GitHub`)
}

func TestRunUser_Invalid(t *testing.T) {
	ctx, out := testContext(t, nil)

	err := runUser(ctx, strings.Repeat("a", 40), userOptions{format: "json"})
	require.ErrorIs(t, err, errReported)

	var snap pipeline.Snapshot
	require.NoError(t, json.Unmarshal(out.Bytes(), &snap))
	assert.Equal(t, pipeline.MsgUsernameTooLong, snap.Error)
}

func TestUserCmd_RejectsFormat(t *testing.T) {
	ctx, _ := testContext(t, nil)

	cmd := newUserCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"octocat", "--format", "xml"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "xml"`)
}

func TestParseRepoArg(t *testing.T) {
	t.Parallel()

	tests := []struct {
		arg       string
		wantOwner string
		wantName  string
		wantErr   bool
	}{
		{arg: "octocat/hello-world", wantOwner: "octocat", wantName: "hello-world"},
		{arg: " octocat/linguist ", wantOwner: "octocat", wantName: "linguist"},
		{arg: "octocat", wantErr: true},
		{arg: "/hello", wantErr: true},
		{arg: "octocat/", wantErr: true},
		{arg: "a/b/c", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			owner, name, err := parseRepoArg(tt.arg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOwner, owner)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

func TestReadmeCmd(t *testing.T) {
	srv := fakeGitHub(t)
	ctx, out := testContext(t, srv)

	cmd := newReadmeCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"octocat/hello-world", "--raw"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "# Hello World\nline 2\nline 3\nline 4\nline 5\n", out.String())

	cmd = newReadmeCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"octocat/linguist"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "README not available for octocat/linguist")
}

func TestResolveToken(t *testing.T) {
	ctx, _ := testContext(t, nil)
	cfg := config.Default()

	t.Cleanup(func() { tokenArg = "" })

	assert.Empty(t, resolveToken(ctx, &cfg))

	cfg.API.Token = "from-config"
	assert.Equal(t, "from-config", resolveToken(ctx, &cfg))

	tokenArg = " from-flag "
	assert.Equal(t, "from-flag", resolveToken(ctx, &cfg))
}

func TestNewClient_APIURLFlag(t *testing.T) {
	ctx, _ := testContext(t, nil)
	cfg := config.Default()

	t.Cleanup(func() { apiURL = "" })

	apiURL = "ftp://example.com"
	_, err := newClient(ctx, &cfg)
	require.Error(t, err)

	apiURL = "https://ghe.example.com/api/v3/"
	client, err := newClient(ctx, &cfg)
	require.NoError(t, err)
	assert.Equal(t, "https://ghe.example.com/api/v3", client.BaseURL())
	assert.False(t, client.HasToken())
}

func TestConfigShow(t *testing.T) {
	ctx, out := testContext(t, nil)
	config.FromContext(ctx).API.Token = "secret"

	cmd := newConfigCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"show"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "base_url")
	assert.Contains(t, out.String(), "********")
	assert.NotContains(t, out.String(), "secret")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ghv", "config.toml")
	t.Setenv("GHV_CONFIG", path)
	ctx, out := testContext(t, nil)

	cmd := newConfigCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"init"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Created config file: "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), string(data))

	cmd = newConfigCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"init", "--force"})
	require.NoError(t, cmd.Execute())
}

func TestConfigInit_Stdout(t *testing.T) {
	ctx, out := testContext(t, nil)

	cmd := newConfigCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"init", "--stdout"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, config.DefaultConfig(), out.String())
}

func TestCompletionCmd(t *testing.T) {
	ctx, out := testContext(t, nil)

	cmd := newCompletionCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"bash"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "bash completion")

	cmd = newCompletionCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"tcsh"})
	assert.Error(t, cmd.Execute())
}
