package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  []string
}

func (f *fakeExec) record(name, arg string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, arg)
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	return f.record("register", "")
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login", "")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout", "")
}
func (f *fakeExec) RecoverPassword(ctx context.Context) error { return f.record("recover", "") }
func (f *fakeExec) ResetPassword(ctx context.Context) error   { return f.record("reset", "") }
func (f *fakeExec) VerifyEmail(ctx context.Context) error     { return f.record("verify", "") }
func (f *fakeExec) Pets(ctx context.Context) error            { return f.record("pets", "") }
func (f *fakeExec) UsePet(ctx context.Context, arg string) error {
	return f.record("use", arg)
}
func (f *fakeExec) NewPet(ctx context.Context) error  { return f.record("newpet", "") }
func (f *fakeExec) EditPet(ctx context.Context) error { return f.record("editpet", "") }
func (f *fakeExec) PetImage(ctx context.Context, arg string) error {
	return f.record("petimg", arg)
}
func (f *fakeExec) Feed(ctx context.Context) error        { return f.record("feed", "") }
func (f *fakeExec) MyPosts(ctx context.Context) error     { return f.record("myposts", "") }
func (f *fakeExec) More(ctx context.Context) error        { return f.record("more", "") }
func (f *fakeExec) RefreshFeed(ctx context.Context) error { return f.record("refresh", "") }
func (f *fakeExec) NewPost(ctx context.Context) error     { return f.record("post", "") }
func (f *fakeExec) EditPost(ctx context.Context, arg string) error {
	return f.record("edit", arg)
}
func (f *fakeExec) DeletePost(ctx context.Context, arg string) error {
	return f.record("del", arg)
}
func (f *fakeExec) Like(ctx context.Context, arg string) error {
	return f.record("like", arg)
}
func (f *fakeExec) CommentPost(ctx context.Context, arg string) error {
	return f.record("comment", arg)
}
func (f *fakeExec) DeleteComment(ctx context.Context, arg string) error {
	return f.record("delcomment", arg)
}
func (f *fakeExec) Follow(ctx context.Context, arg string) error {
	return f.record("follow", arg)
}
func (f *fakeExec) Unfollow(ctx context.Context, arg string) error {
	return f.record("unfollow", arg)
}
func (f *fakeExec) Social(ctx context.Context, arg string) error {
	return f.record("social", arg)
}
func (f *fakeExec) Conversations(ctx context.Context) error { return f.record("msgs", "") }
func (f *fakeExec) Chat(ctx context.Context, arg string) error {
	return f.record("chat", arg)
}
func (f *fakeExec) Send(ctx context.Context, arg string) error {
	return f.record("send", arg)
}
func (f *fakeExec) Unread(ctx context.Context) error { return f.record("unread", "") }
func (f *fakeExec) WhoAmI(ctx context.Context) error { return f.record("whoami", "") }

func silencePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		for _, v := range a {
			if s, ok := v.(string); ok {
				lines = append(lines, s)
			}
		}
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPLDispatch(t *testing.T) {
	silencePrintln(t)

	input := strings.Join([]string{
		"login",
		"feed",
		"more",
		"myposts",
		"editpet",
		"like 42",
		"comment 42",
		"delcomment 42 9",
		"use 2",
		"follow 7",
		"chat 7",
		"logout",
		"exit",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader(input)))

	require.Equal(t,
		[]string{"login", "feed", "more", "myposts", "editpet", "like", "comment", "delcomment", "use", "follow", "chat", "logout"},
		exec.calls)
	require.Equal(t, "42", exec.args[5])
	require.Equal(t, "42", exec.args[6])
	require.Equal(t, "42 9", exec.args[7])
	require.Equal(t, "2", exec.args[8])
	require.Equal(t, "7", exec.args[9])
}

func TestRunREPLUnknownCommand(t *testing.T) {
	lines := silencePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" },
		bufio.NewScanner(strings.NewReader("frobnicate\nexit\n")))

	require.Empty(t, exec.calls)
	require.Contains(t, *lines, "Unknown command: frobnicate")
}

func TestRunREPLHelpDependsOnAuth(t *testing.T) {
	lines := silencePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" },
		bufio.NewScanner(strings.NewReader("help\nlogin\nhelp\nexit\n")))

	var helps []string
	for _, l := range *lines {
		if strings.HasPrefix(l, "Available commands:") {
			helps = append(helps, l)
		}
	}
	require.Len(t, helps, 2)
	require.Contains(t, helps[0], "register")
	require.NotContains(t, helps[0], "feed")
	require.Contains(t, helps[1], "feed")
}

func TestRunREPLMissingArgPassedEmpty(t *testing.T) {
	silencePrintln(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" },
		bufio.NewScanner(strings.NewReader("like\nexit\n")))

	require.Equal(t, []string{"like"}, exec.calls)
	require.Equal(t, "", exec.args[0])
}

func TestRunREPLStopsOnEOF(t *testing.T) {
	silencePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" },
		bufio.NewScanner(strings.NewReader("pets\n")))

	require.Equal(t, []string{"pets"}, exec.calls)
}
