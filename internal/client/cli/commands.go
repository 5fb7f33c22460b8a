package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/qdrive/internal/client/api"
	"github.com/dmitrijs2005/qdrive/internal/common"
	"github.com/fatih/color"
)

// errInsecureSession is reported when the server issued a Secure cookie that
// the jar will not send back over plain http.
var errInsecureSession = errors.New("login succeeded but the session cookie is Secure and is not sent over http; " +
	"use an https server URL or run the server with -env development")

func (a *App) Register(ctx context.Context) error {
	var in api.RegisterRequest
	var err error

	prompts := []struct {
		label string
		dst   *string
	}{
		{"Email", &in.Email},
		{"Name", &in.Name},
		{"Phone", &in.Phone},
		{"Role (passenger|driver)", &in.Role},
	}
	for _, p := range prompts {
		if *p.dst, err = GetSimpleText(a.reader, p.label, a.out); err != nil {
			return a.failure(err)
		}
	}

	if strings.EqualFold(in.Role, "driver") {
		if in.LicenseNumber, err = GetSimpleText(a.reader, "License number (empty to skip)", a.out); err != nil {
			return a.failure(err)
		}
	}

	pw, err := GetPassword(a.out)
	if err != nil {
		return a.failure(err)
	}
	in.Password = string(pw)
	common.WipeByteArray(pw)

	u, err := a.client.Register(ctx, in)
	if err != nil {
		return a.failure(err)
	}
	a.success("Registered %s as %s", u.Email, u.Role)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return a.failure(err)
	}
	pw, err := GetPassword(a.out)
	if err != nil {
		return a.failure(err)
	}

	defer common.WipeByteArray(pw)

	u, err := a.client.Login(ctx, email, string(pw))
	if err != nil {
		return a.failure(err)
	}
	if !a.client.LoggedIn() {
		return a.failure(errInsecureSession)
	}
	a.user = u
	a.success("Logged in as %s", u.Name)
	return nil
}

func (a *App) Me(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	u, err := a.client.Me(ctx)
	if err != nil {
		return a.failure(err)
	}
	a.user = u

	bold := color.New(color.Bold)
	bold.Fprintf(a.out, "%s <%s>\n", u.Name, u.Email)
	fmt.Fprintf(a.out, "  id:    %s\n  role:  %s\n  phone: %s\n", u.ID, u.Role, u.Phone)
	if u.LicenseNumber != "" {
		fmt.Fprintf(a.out, "  license: %s (verified: %t)\n", u.LicenseNumber, u.IsVerified)
	}
	if u.ProfilePicture != "" {
		fmt.Fprintf(a.out, "  picture: %s\n", u.ProfilePicture)
	}
	return nil
}

func (a *App) Ride(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	var pickup, dest api.Point
	var err error
	if pickup.Latitude, pickup.Longitude, err = GetCoordinates(a.reader, "Pickup", a.out); err != nil {
		return a.failure(err)
	}
	if dest.Latitude, dest.Longitude, err = GetCoordinates(a.reader, "Destination", a.out); err != nil {
		return a.failure(err)
	}

	r, err := a.client.RequestRide(ctx, pickup, dest)
	if err != nil {
		return a.failure(err)
	}
	a.success("Ride %s %s", r.ID, r.Status)
	return nil
}

// Status shows one of the user's rides.
func (a *App) Status(ctx context.Context, id string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	r, err := a.client.GetRide(ctx, id)
	if err != nil {
		return a.failure(err)
	}
	color.New(color.Bold).Fprintf(a.out, "Ride %s: %s\n", r.ID, r.Status)
	fmt.Fprintf(a.out, "  pickup:      %.6f,%.6f\n  destination: %.6f,%.6f\n  requested:   %s\n",
		r.Pickup.Latitude, r.Pickup.Longitude, r.Destination.Latitude, r.Destination.Longitude,
		r.RequestTime.Format("2006-01-02 15:04:05"))
	return nil
}

// Avatar uploads the file at path as the user's profile picture.
func (a *App) Avatar(ctx context.Context, path string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return a.failure(err)
	}

	up, err := a.client.ProfilePictureUploadURL(ctx)
	if err != nil {
		return a.failure(err)
	}
	if err := a.client.UploadToPresignedURL(ctx, up.URL, data); err != nil {
		return a.failure(err)
	}
	a.success("Uploaded %s", up.Key)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if err := a.client.Logout(ctx); err != nil {
		return a.failure(err)
	}
	a.user = nil
	a.success("Logged out")
	return nil
}
