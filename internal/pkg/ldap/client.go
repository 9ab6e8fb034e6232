// Package ldap wraps the directory protocol calls the rest of the
// service needs: credential binds and user searches. Connections are
// short-lived; one dial per operation.
package ldap

import (
	"crypto/tls"
	"fmt"

	goldap "github.com/go-ldap/ldap/v3"
)

type Config struct {
	URL          string
	StartTLS     bool
	BindDN       string
	BindPassword string
	BaseDN       string
	UserFilter   string
	UsernameAttr string
	NameAttr     string
	MailAttr     string
}

// Entry is a directory user as seen by the sync job.
type Entry struct {
	DN       string
	Username string
	FullName string
	Email    string
}

type Client struct {
	cfg Config
}

func NewClient(cfg Config) *Client {
	if cfg.UserFilter == "" {
		cfg.UserFilter = "(objectClass=inetOrgPerson)"
	}
	if cfg.UsernameAttr == "" {
		cfg.UsernameAttr = "uid"
	}
	if cfg.NameAttr == "" {
		cfg.NameAttr = "cn"
	}
	if cfg.MailAttr == "" {
		cfg.MailAttr = "mail"
	}
	return &Client{cfg: cfg}
}

func (c *Client) dial() (*goldap.Conn, error) {
	conn, err := goldap.DialURL(c.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial directory: %w", err)
	}
	if c.cfg.StartTLS {
		if err := conn.StartTLS(&tls.Config{InsecureSkipVerify: false}); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to start TLS: %w", err)
		}
	}
	return conn, nil
}

// BindUser authenticates a user by DN and password. A failed bind is
// returned as-is for the caller to map to invalid-credentials.
func (c *Client) BindUser(dn, password string) error {
	conn, err := c.dial()
	if err != nil {
		return err
	}
	defer conn.Close()
	return conn.Bind(dn, password)
}

// FindUser locates one user entry by username using the service bind.
func (c *Client) FindUser(username string) (Entry, error) {
	entries, err := c.search(fmt.Sprintf("(&%s(%s=%s))",
		c.cfg.UserFilter, c.cfg.UsernameAttr, goldap.EscapeFilter(username)))
	if err != nil {
		return Entry{}, err
	}
	if len(entries) == 0 {
		return Entry{}, fmt.Errorf("no directory entry for %q", username)
	}
	return entries[0], nil
}

// ListUsers returns every user entry under the base DN.
func (c *Client) ListUsers() ([]Entry, error) {
	return c.search(c.cfg.UserFilter)
}

func (c *Client) search(filter string) ([]Entry, error) {
	conn, err := c.dial()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if err := conn.Bind(c.cfg.BindDN, c.cfg.BindPassword); err != nil {
		return nil, fmt.Errorf("service bind failed: %w", err)
	}

	req := goldap.NewSearchRequest(
		c.cfg.BaseDN,
		goldap.ScopeWholeSubtree, goldap.NeverDerefAliases, 0, 0, false,
		filter,
		[]string{c.cfg.UsernameAttr, c.cfg.NameAttr, c.cfg.MailAttr},
		nil,
	)

	res, err := conn.Search(req)
	if err != nil {
		return nil, fmt.Errorf("directory search failed: %w", err)
	}

	entries := make([]Entry, 0, len(res.Entries))
	for _, e := range res.Entries {
		entries = append(entries, Entry{
			DN:       e.DN,
			Username: e.GetAttributeValue(c.cfg.UsernameAttr),
			FullName: e.GetAttributeValue(c.cfg.NameAttr),
			Email:    e.GetAttributeValue(c.cfg.MailAttr),
		})
	}
	return entries, nil
}
