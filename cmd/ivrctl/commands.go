package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/celerix-dev/ivr-reports/internal/dashboard"
	"github.com/celerix-dev/ivr-reports/internal/export"
	"github.com/celerix-dev/ivr-reports/pkg/schema"
)

func newLoginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the session for later commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			u, err := e.app.Login(cmd.Context(), username, password)
			if err != nil {
				return errors.New(dashboard.Message(err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Bienvenido, %s\n", u.DisplayName)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "Username (required)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (required)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.app.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			u := e.app.User()
			if u == nil {
				return errors.New(dashboard.Message(dashboard.ErrNotLoggedIn))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", u.DisplayName, u.Username)
			return nil
		},
	}
}

func addFilterFlags(cmd *cobra.Command, f *schema.FilterCriteria) {
	cmd.Flags().StringVar(&f.StartDate, "start-date", "", "Only records from this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.EndDate, "end-date", "", "Only records up to this date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&f.Channel, "channel", "c", schema.AllChannels, "Channel: todos, llamadas, whatsapp, messenger")
}

// load fetches the records for f into e.app.
func load(cmd *cobra.Command, e *env, f schema.FilterCriteria) error {
	if !e.app.LoggedIn() {
		return errors.New(dashboard.Message(dashboard.ErrNotLoggedIn))
	}
	if err := e.app.SetFilters(cmd.Context(), f); err != nil {
		return errors.New(dashboard.Message(err))
	}
	return nil
}

func newRecordsCmd() *cobra.Command {
	var filters schema.FilterCriteria
	var query string
	var page int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "records",
		Short: "List interaction records",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			if err := load(cmd, e, filters); err != nil {
				return err
			}
			e.app.SetQuery(query)
			if page != 1 && !e.app.GoTo(page) {
				return fmt.Errorf("page %d out of range", page)
			}

			view := e.app.View()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(view)
			}
			printView(cmd.OutOrStdout(), view)
			return nil
		},
	}
	addFilterFlags(cmd, &filters)
	cmd.Flags().StringVarP(&query, "search", "s", "", "Free-text search over the loaded records")
	cmd.Flags().IntVar(&page, "page", 1, "Page to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the view as JSON")
	return cmd
}

func printView(w io.Writer, v dashboard.View) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tINICIO\tFIN\tCANAL\tUSUARIO\tCLIENTE\tMENU\tSUBMENU\tSUBMENU 2\tESTADO")
	for _, r := range v.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Start, r.End, r.Channel.Label, r.ChannelUserID, r.CustomerID,
			r.Menu, r.SubMenu, r.SubMenu2, r.Status.Label)
	}
	_ = tw.Flush()

	fmt.Fprintf(w, "\nPágina %d de %d · %d de %d registros\n",
		v.Page.Page, v.Page.TotalPages, v.Page.Matched, v.Page.Total)
}

func newStatsCmd() *cobra.Command {
	var filters schema.FilterCriteria

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Count records per channel",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			if err := load(cmd, e, filters); err != nil {
				return err
			}
			s := e.app.Stats()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Llamadas:  %d\n", s.Calls)
			fmt.Fprintf(out, "WhatsApp:  %d\n", s.WhatsApp)
			fmt.Fprintf(out, "Messenger: %d\n", s.Messenger)
			return nil
		},
	}
	addFilterFlags(cmd, &filters)
	return cmd
}

func newExportCmd() *cobra.Command {
	var filters schema.FilterCriteria
	var dir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the matching records to a CSV report",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			if err := load(cmd, e, filters); err != nil {
				return err
			}
			if dir == "" {
				dir = e.cfg.ExportDir
			}
			sink := export.DirSink{Dir: dir}
			name, err := e.app.Export(sink)
			if errors.Is(err, export.ErrNothingToExport) {
				return errors.New(dashboard.Message(err))
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sink.Path(name))
			return nil
		},
	}
	addFilterFlags(cmd, &filters)
	cmd.Flags().StringVarP(&dir, "dir", "o", "", "Output directory (default EXPORT_DIR)")
	return cmd
}
