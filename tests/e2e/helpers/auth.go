package helpers

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// PageHeading matches the heading element shared by the dashboard and
// users pages.
const PageHeading = "div.mb-8 > h2.title-flat"

// AuthHelper provides authentication utilities for tests.
type AuthHelper struct {
	browser *BrowserHelper
}

// NewAuthHelper creates a new authentication helper.
func NewAuthHelper(browser *BrowserHelper) *AuthHelper {
	return &AuthHelper{browser: browser}
}

// Login signs in through the admin UI and waits for the dashboard.
func (a *AuthHelper) Login(username, password string) error {
	if err := a.browser.NavigateTo("/"); err != nil {
		return fmt.Errorf("failed to navigate to login: %w", err)
	}

	page := a.browser.Page
	if err := page.GetByLabel("Username").Fill(username); err != nil {
		return fmt.Errorf("failed to fill username: %w", err)
	}
	if err := page.GetByLabel("Password").Fill(password); err != nil {
		return fmt.Errorf("failed to fill password: %w", err)
	}
	if err := page.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{
		Name: "SIGN IN",
	}).Click(); err != nil {
		return fmt.Errorf("failed to click sign in: %w", err)
	}

	heading := page.Locator(PageHeading)
	if err := heading.WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	}); err != nil {
		return fmt.Errorf("dashboard did not appear after login: %w", err)
	}

	text, err := heading.TextContent()
	if err != nil {
		return fmt.Errorf("failed to read heading: %w", err)
	}
	if strings.TrimSpace(text) != "Dashboard" {
		return fmt.Errorf("expected dashboard after login, got heading %q", text)
	}
	return nil
}

// LoginAsAdmin logs in with the admin credentials from config.
func (a *AuthHelper) LoginAsAdmin() error {
	return a.Login(a.browser.Config.AdminUser, a.browser.Config.AdminPassword)
}

// OpenUsersPage clicks the User Management link and waits for the Users
// heading.
func (a *AuthHelper) OpenUsersPage() error {
	page := a.browser.Page
	if err := page.GetByRole(*playwright.AriaRoleLink, playwright.PageGetByRoleOptions{
		Name: "User Management",
	}).Click(); err != nil {
		return fmt.Errorf("failed to click user management: %w", err)
	}

	heading := page.Locator(PageHeading)
	if err := heading.WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	}); err != nil {
		return fmt.Errorf("users page did not appear: %w", err)
	}

	text, err := heading.TextContent()
	if err != nil {
		return fmt.Errorf("failed to read heading: %w", err)
	}
	if strings.TrimSpace(text) != "Users" {
		return fmt.Errorf("expected users page, got heading %q", text)
	}
	return nil
}
