package identity

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/user"
	"strings"
	"time"
)

// InitFlow runs the interactive identity setup against the given store.
// Input and output are injectable for tests.
type InitFlow struct {
	Store *Store
	In    io.Reader
	Out   io.Writer
}

// NewInitFlow creates an init flow bound to stdin/stdout.
func NewInitFlow(store *Store) *InitFlow {
	return &InitFlow{Store: store, In: os.Stdin, Out: os.Stdout}
}

// Run collects operator information, derives host values, and persists
// the identity. If an identity already exists the operator must confirm
// the overwrite.
func (f *InitFlow) Run() error {
	reader := bufio.NewReader(f.In)

	if existing := f.Store.Load(); existing != nil {
		fmt.Fprintf(f.Out, "Already initialized for this user.\n")
		fmt.Fprintf(f.Out, "  User: %s <%s>\n", existing.Name, existing.Email)
		fmt.Fprintf(f.Out, "  Host: %s\n", existing.Hostname)
		fmt.Fprintf(f.Out, "  Created: %s\n", existing.CreatedAt.Format(time.RFC3339))

		answer := prompt(reader, f.Out, "Overwrite the existing identity? [y/N]")
		if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
			fmt.Fprintln(f.Out, "Initialization aborted.")
			return nil
		}
	}

	fmt.Fprintln(f.Out, "This installation will be associated with your local system user.")
	fmt.Fprintln(f.Out, "The information is used for accountability and audit purposes.")
	fmt.Fprintln(f.Out)

	name := prompt(reader, f.Out, "Full name")
	email := prompt(reader, f.Out, "Email")
	org := prompt(reader, f.Out, "Organization (optional)")

	if name == "" || email == "" {
		return fmt.Errorf("name and email are required")
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	osUser := currentUsername()

	id := &Identity{
		UserID:      email,
		Name:        name,
		Email:       email,
		Org:         org,
		Hostname:    hostname,
		OSUser:      osUser,
		Fingerprint: Fingerprint(hostname, osUser),
		CreatedAt:   time.Now().UTC(),
	}

	if err := f.Store.Save(id); err != nil {
		return fmt.Errorf("failed to save identity: %w", err)
	}

	fmt.Fprintln(f.Out)
	fmt.Fprintln(f.Out, "Identity initialized successfully.")
	fmt.Fprintf(f.Out, "  User: %s <%s>\n", id.Name, id.Email)
	fmt.Fprintf(f.Out, "  Host: %s\n", id.Hostname)
	fmt.Fprintf(f.Out, "  Fingerprint: %s\n", id.Fingerprint)
	return nil
}

func prompt(reader *bufio.Reader, out io.Writer, label string) string {
	fmt.Fprintf(out, "%s: ", label)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}

func currentUsername() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "unknown"
}
