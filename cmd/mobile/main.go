// Command mobile is the field technician's client: it creates
// maintenance tasks against the backend when the server is reachable,
// queues them locally when it is not, and replays the queue on demand.
//
// Usage:
//
//	mobile submit -naslov "Popravilo klime" -stranka 7 [-oprema 3] [-opis ...] [-datum 2026-09-15] [-prioriteta visoka] [-slika a.jpg -slika b.jpg]
//	mobile list [-status nacrtovan] [-stranka 7] [-sort datum_vzdrzevanja]
//	mobile sync
//	mobile settings [-server http://host:3001] [-autosync=true|false]
//	mobile pair -geslo <password> [-naprava <name>]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"vzdrzevanje/internal/mobile/api"
	"vzdrzevanje/internal/mobile/connectivity"
	"vzdrzevanje/internal/mobile/offline"
	"vzdrzevanje/internal/mobile/storage"
	"vzdrzevanje/internal/models"
)

const tokenKey = "pair_token"

type stringList []string

func (s *stringList) String() string { return fmt.Sprint([]string(*s)) }
func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()

	store, err := openStore()
	if err != nil {
		log.Fatalf("open local store: %v", err)
	}
	defer store.Close()

	settings, err := storage.LoadSettings(ctx, store)
	if err != nil {
		log.Fatalf("load settings: %v", err)
	}

	client := api.NewClient(settings.ServerURL)
	if token, ok, err := store.Get(ctx, tokenKey); err == nil && ok {
		client.SetToken(token)
	}

	monitor := connectivity.NewProbeMonitor(client.Health, 15*time.Second)
	queue := buildQueue(ctx, store, client, monitor, settings)

	switch os.Args[1] {
	case "submit":
		runSubmit(ctx, queue, monitor, os.Args[2:])
	case "list":
		runList(ctx, queue, monitor, os.Args[2:])
	case "sync":
		runSync(ctx, queue, monitor)
	case "settings":
		runSettings(ctx, store, settings, os.Args[2:])
	case "pair":
		runPair(ctx, store, client, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: mobile <submit|list|sync|settings|pair> [flags]")
}

// buildQueue assembles the offline queue; with auto-sync enabled in
// the settings, a connectivity transition to online replays it.
func buildQueue(ctx context.Context, store storage.Store, remote offline.RemoteService, monitor connectivity.Monitor, settings storage.Settings) *offline.Queue {
	queue := offline.New(store, remote, monitor)
	if settings.AutoSync {
		queue.EnableAutoSync(ctx)
	}
	return queue
}

func openStore() (*storage.SQLiteStore, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return storage.NewSQLiteStore(filepath.Join(home, ".vzdrzevanje", "mobile.db"))
}

func runSubmit(ctx context.Context, queue *offline.Queue, monitor *connectivity.ProbeMonitor, args []string) {
	fs := flag.NewFlagSet("submit", flag.ExitOnError)
	title := fs.String("naslov", "", "task title (required)")
	clientID := fs.Int64("stranka", 0, "client id (required)")
	equipmentID := fs.Int64("oprema", 0, "equipment id")
	desc := fs.String("opis", "", "description")
	date := fs.String("datum", "", "planned maintenance date (YYYY-MM-DD)")
	priority := fs.String("prioriteta", "", "priority: nizka|srednja|visoka")
	spareParts := fs.String("deli", "", "spare parts notes")
	notes := fs.String("opombe", "", "remarks")
	var images stringList
	fs.Var(&images, "slika", "image file to attach (repeatable)")
	fs.Parse(args)

	// form validation happens here, before the queue is involved
	if *title == "" {
		log.Fatal("Naslov naloga je obvezen")
	}
	if *clientID == 0 {
		log.Fatal("Izberite stranko")
	}

	form := api.TaskForm{
		ClientID:    *clientID,
		Title:       *title,
		Description: *desc,
		PlannedDate: *date,
		SpareParts:  *spareParts,
		Notes:       *notes,
	}
	if *equipmentID != 0 {
		form.EquipmentID = equipmentID
	}
	if *priority != "" {
		form.Priority = models.TaskPriority(*priority)
	}

	monitor.Start(ctx)
	defer monitor.Stop()

	result, err := queue.SubmitTask(ctx, form, images)
	if err != nil {
		log.Fatalf("Napaka pri shranjevanju naloga: %v", err)
	}
	if result.Queued {
		fmt.Println("Nalog je bil shranjen offline in bo sinhroniziran, ko se povezete z internetom")
	} else {
		fmt.Printf("Nalog je bil uspesno ustvarjen (id=%d)\n", result.TaskID)
	}
}

func runList(ctx context.Context, queue *offline.Queue, monitor *connectivity.ProbeMonitor, args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	status := fs.String("status", "", "filter by status")
	clientID := fs.Int64("stranka", 0, "filter by client id")
	equipmentID := fs.Int64("oprema", 0, "filter by equipment id")
	date := fs.String("datum", "", "filter by planned date (YYYY-MM-DD)")
	sortBy := fs.String("sort", "", "sort key")
	asJSON := fs.Bool("json", false, "print raw JSON")
	fs.Parse(args)

	monitor.Start(ctx)
	defer monitor.Stop()

	items, err := queue.ListTasks(ctx, api.TaskFilters{
		Status:      *status,
		ClientID:    *clientID,
		EquipmentID: *equipmentID,
		PlannedDate: *date,
		SortBy:      *sortBy,
	})
	if err != nil {
		log.Fatalf("Napaka pri nalaganju nalogov: %v", err)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(items)
		return
	}

	for _, item := range items {
		id := fmt.Sprintf("%d", item.ID)
		marker := ""
		if item.Offline {
			id = item.LocalID[:8]
			marker = " [offline]"
		}
		date := ""
		if item.PlannedDate != nil {
			date = item.PlannedDate.Format("2006-01-02")
		}
		fmt.Printf("%-10s %-40s %-12s %-8s %s%s\n", id, item.Title, item.Status, item.Priority, date, marker)
	}
	fmt.Printf("%d nalogov\n", len(items))
}

func runSync(ctx context.Context, queue *offline.Queue, monitor *connectivity.ProbeMonitor) {
	monitor.Start(ctx)
	defer monitor.Stop()

	if !monitor.IsConnected() {
		log.Fatal("Ni internetne povezave")
	}

	result, err := queue.Sync(ctx)
	if err != nil {
		log.Fatalf("Napaka pri sinhronizaciji: %v", err)
	}
	fmt.Printf("Sinhronizirano %d/%d nalogov\n", result.Synced, result.Attempted)
	for _, f := range result.Failed {
		fmt.Printf("  neuspesno %s (%s): %s\n", f.LocalID[:8], f.Title, f.Err)
	}
	if len(result.Failed) > 0 {
		os.Exit(1)
	}
}

func runSettings(ctx context.Context, store storage.Store, settings storage.Settings, args []string) {
	fs := flag.NewFlagSet("settings", flag.ExitOnError)
	server := fs.String("server", "", "backend server URL")
	autoSync := fs.String("autosync", "", "sync automatically on reconnect (true|false)")
	notifications := fs.String("notifications", "", "enable notifications (true|false)")
	theme := fs.String("theme", "", "UI theme")
	fs.Parse(args)

	changed := false
	if *server != "" {
		settings.ServerURL = *server
		changed = true
	}
	if *autoSync != "" {
		settings.AutoSync = *autoSync == "true"
		changed = true
	}
	if *notifications != "" {
		settings.Notifications = *notifications == "true"
		changed = true
	}
	if *theme != "" {
		settings.Theme = *theme
		changed = true
	}

	if changed {
		if err := storage.SaveSettings(ctx, store, settings); err != nil {
			log.Fatalf("save settings: %v", err)
		}
	}

	fmt.Printf("server:        %s\n", settings.ServerURL)
	fmt.Printf("autosync:      %v\n", settings.AutoSync)
	fmt.Printf("notifications: %v\n", settings.Notifications)
	fmt.Printf("theme:         %s\n", settings.Theme)
}

func runPair(ctx context.Context, store storage.Store, client *api.Client, args []string) {
	fs := flag.NewFlagSet("pair", flag.ExitOnError)
	password := fs.String("geslo", "", "pairing password (required)")
	device := fs.String("naprava", "", "device name")
	fs.Parse(args)

	if *password == "" {
		log.Fatal("geslo is required")
	}
	name := *device
	if name == "" {
		name, _ = os.Hostname()
	}

	token, err := client.Pair(ctx, name, *password)
	if err != nil {
		log.Fatalf("pairing failed: %v", err)
	}
	if err := store.Set(ctx, tokenKey, token); err != nil {
		log.Fatalf("save token: %v", err)
	}
	fmt.Println("Naprava uspesno povezana")
}
