package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/immxrtalbeast/meetrelay/internal/api/http/converter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newRoomsCmd() *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "rooms",
		Short: "List live rooms on a running server",
		Long:  "List live rooms on a running server. The server must run with http.expose_room_list enabled.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			rooms, err := fetchRooms(ctx, http.DefaultClient, server)
			if err != nil {
				return err
			}
			renderRooms(cmd.OutOrStdout(), rooms)
			return nil
		},
	}

	cmd.Flags().StringVar(&server, "server", "http://localhost:3000", "base URL of the server")
	return cmd
}

func fetchRooms(ctx context.Context, client *http.Client, server string) ([]converter.RoomResponse, error) {
	url := strings.TrimRight(server, "/") + "/api/rooms"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch rooms: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("fetch rooms: room listing is disabled on %s", server)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch rooms: unexpected status %s", resp.Status)
	}

	var body struct {
		Rooms []converter.RoomResponse `json:"rooms"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode rooms: %w", err)
	}
	return body.Rooms, nil
}

func renderRooms(w io.Writer, rooms []converter.RoomResponse) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Room", "Participants", "Open since"})

	total := 0
	for _, r := range rooms {
		total += r.Participants
		t.AppendRow(table.Row{r.Token, r.Participants, r.CreatedAt.Local().Format(time.DateTime)})
	}

	t.AppendFooter(table.Row{fmt.Sprintf("%d rooms", len(rooms)), total, ""})
	t.Render()
}
