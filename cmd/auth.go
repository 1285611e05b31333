package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/desertthunder/tubeflow/internal/server"
	"github.com/desertthunder/tubeflow/internal/services"
	"github.com/desertthunder/tubeflow/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// AuthLogin runs the browser OAuth flow against the backend and caches the token.
//
// A localhost callback server receives the authorization code; the exchanged
// token is written to the configured token path.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	auth := r.config.Auth
	if auth.ClientID == "" || auth.ClientSecret == "" {
		return fmt.Errorf("%w: client_id and client_secret must be set in config.toml", shared.ErrMissingCredentials)
	}

	oauthConfig := &oauth2.Config{
		ClientID:     auth.ClientID,
		ClientSecret: auth.ClientSecret,
		RedirectURL:  auth.RedirectURI,
		Endpoint: oauth2.Endpoint{
			AuthURL:  r.config.API.BaseURL + "/auth/authorize",
			TokenURL: r.config.API.BaseURL + "/auth/token",
		},
	}

	redirect, err := url.Parse(auth.RedirectURI)
	if err != nil {
		return fmt.Errorf("%w: invalid redirect_uri: %v", shared.ErrInvalidConfig, err)
	}

	state := shared.GenerateID()
	handler := server.NewOAuthHandler(oauthConfig, state)

	router := server.NewBasicRouter()
	router.Handler(handler)

	srv := &http.Server{Addr: redirect.Host, Handler: router}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			r.logger.Error("callback server error", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	authURL := oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
	r.writePlain("Open the following URL in your browser to sign in:\n\n%s\n\n", authURL)
	r.logger.Info("waiting for OAuth callback", "addr", redirect.Host)

	select {
	case result := <-handler.Result():
		if result.Error() != nil {
			return fmt.Errorf("%w: %v", shared.ErrAuthFailed, result.Error())
		}
		tokenPath := shared.ExpandPath(auth.TokenPath)
		if err := services.SaveToken(tokenPath, result.Token); err != nil {
			return err
		}
		r.logger.Info("token saved", "path", tokenPath)
		return r.writePlain("✓ Signed in successfully\n")
	case <-ctx.Done():
		return fmt.Errorf("%w: authorization cancelled: %v", shared.ErrAuthFailed, ctx.Err())
	case <-time.After(5 * time.Minute):
		return fmt.Errorf("%w: timed out waiting for authorization", shared.ErrAuthFailed)
	}
}

// AuthStatus checks the cached credential and verifies it against the backend.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if r.tokens == nil || !r.tokens.Exists() {
		r.writePlain("✗ Not signed in\n")
		r.writePlain("Run 'tubeflow auth login' to authenticate\n")
		return nil
	}

	r.logger.Info("verifying credential against backend")
	if _, err := r.backend.ListPlaylists(ctx); err != nil {
		if errors.Is(err, shared.ErrAuthFailed) {
			r.writePlain("✗ Credential present but rejected by the backend\n")
			r.writePlain("Run 'tubeflow auth login' to re-authenticate\n")
			return nil
		}
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}

	return r.writePlain("✓ Signed in\n")
}

// AuthLogout removes the cached credential and clears the active session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	tokenPath := shared.ExpandPath(r.config.Auth.TokenPath)
	if err := services.ClearToken(tokenPath); err != nil {
		return err
	}

	if err := r.engine.Reset(ctx); err != nil {
		return err
	}

	r.logger.Info("credential removed", "path", tokenPath)
	return r.writePlain("✓ Signed out; session cleared\n")
}
