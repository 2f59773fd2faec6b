package main

import (
	"fmt"

	"github.com/jonathan/resume-analyzer/internal/guard"
	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/spf13/cobra"
)

var profileCmd = withAccess(&cobra.Command{
	Use:   "profile",
	Short: "Show or update your profile",
	Long:  "Without flags, show your profile. With any of the update flags, change those fields and keep the rest.",
	Args:  cobra.NoArgs,
	RunE:  runProfile,
}, guard.Protected)

var (
	profileName     string
	profileHeadline string
	profileTitle    string
	profileAbout    string
	profileSkills   string
	profileLocation string
	profileWebsite  string
)

func init() {
	profileCmd.Flags().StringVar(&profileName, "name", "", "Full name")
	profileCmd.Flags().StringVar(&profileHeadline, "headline", "", "Professional headline")
	profileCmd.Flags().StringVar(&profileTitle, "title", "", "Current job title")
	profileCmd.Flags().StringVar(&profileAbout, "about", "", "About you (max 1000 characters)")
	profileCmd.Flags().StringVar(&profileSkills, "skills", "", "Comma-separated skills, e.g. \"Go, SQL, Docker\"")
	profileCmd.Flags().StringVar(&profileLocation, "location", "", "Location")
	profileCmd.Flags().StringVar(&profileWebsite, "website", "", "Personal website URL")
	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	profile, err := app.client.Profile(ctx)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	update := types.UpdateFromProfile(profile)
	changed := false
	flags := cmd.Flags()
	for name, apply := range map[string]func(){
		"name":     func() { update.Name = profileName },
		"headline": func() { update.Headline = profileHeadline },
		"title":    func() { update.CurrentJobTitle = profileTitle },
		"about":    func() { update.About = profileAbout },
		"skills":   func() { update.Skills = types.ParseSkills(profileSkills) },
		"location": func() { update.Location = profileLocation },
		"website":  func() { update.Website = profileWebsite },
	} {
		if flags.Changed(name) {
			apply()
			changed = true
		}
	}

	if changed {
		profile, err = app.client.UpdateProfile(ctx, update)
		if err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}
		app.printer.Line("Profile updated")
	}

	app.printer.PrintProfile(profile)
	return nil
}
