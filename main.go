package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"boardgame-lending/config"
	"boardgame-lending/lending"
	"boardgame-lending/utils/logger"
)

var rootCmd = &cobra.Command{
	Use:   "boardgame-lending",
	Short: "ระบบยืม-คืนบอร์ดเกม",
	Long: `boardgame-lending tracks a small board-game catalog and records
borrow/return events against the spreadsheet-backed ledger endpoint.
Running without a subcommand starts the interactive lending loop.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Dump the current catalog as a Go seed snippet",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		defer f.Close()

		if err := lending.WriteSeedSnippet(f, ctrl.Store().Games()); err != nil {
			return fmt.Errorf("write export file: %w", err)
		}
		fmt.Printf("Exported %d games to %s\n", len(ctrl.Store().Games()), exportOut)
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Replace the stored catalog with the built-in seed data",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		ctrl.Store().ResetToSeed()
		fmt.Println("Catalog reset to seed data.")
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "seed_snippet.go", "output file for the seed snippet")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resetCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup wires config, slot, store, ledger client, and controller.
func setup() (*lending.Controller, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	logger.SetLevel(cfg.LogLevel)

	slot, err := lending.OpenSlot(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open catalog database: %w", err)
	}

	store := lending.NewCatalogStore(slot)
	store.Initialize()

	ledger := lending.NewLedgerClient(lending.LedgerConfig{
		BaseURL: cfg.LedgerURL,
		Timeout: cfg.HTTPTimeout,
	})

	return lending.NewController(store, ledger), func() { slot.Close() }, nil
}

func runInteractive() error {
	ctrl, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Println("ระบบยืม-คืนบอร์ดเกม")
	fmt.Println("Commands on the main list:")
	fmt.Println("  select <id>   toggle a game for borrowing")
	fmt.Println("  filter <cat>  show one category, ยอดนิยม, or ทั้งหมด")
	fmt.Println("  confirm       proceed to the borrow form")
	fmt.Println("  search        find games by name")
	fmt.Println("  return        record returned games")
	fmt.Println("  manage        librarian view (passcode required)")
	fmt.Println("  reset         restore the seed catalog")
	fmt.Println("  exit          quit")

	scanner := bufio.NewScanner(os.Stdin)
	filter := lending.FilterAll

	for {
		switch ctrl.View() {
		case lending.ViewList:
			if !handleList(scanner, ctrl, &filter) {
				fmt.Println("Goodbye!")
				return nil
			}
		case lending.ViewSearch:
			handleSearch(scanner, ctrl)
		case lending.ViewBorrowForm:
			handleBorrowForm(scanner, ctrl)
		case lending.ViewBorrowSuccess:
			handleBorrowSuccess(scanner, ctrl)
		case lending.ViewManageGames:
			handleManage(scanner, ctrl)
		default:
			ctrl.GoToList()
		}
	}
}

// handleList shows the filtered catalog and dispatches one command. It
// returns false when the user exits.
func handleList(sc *bufio.Scanner, ctrl *lending.Controller, filter *string) bool {
	fmt.Printf("\n--- รายการบอร์ดเกม (%s) ---\n", *filter)
	printGames(ctrl.FilteredGames(*filter))
	selected := ctrl.Store().Selected()
	if len(selected) > 0 {
		fmt.Printf("เลือกแล้ว %d รายการ\n", len(selected))
	}

	fmt.Print("\n> ")
	if !sc.Scan() {
		return false
	}
	line := strings.TrimSpace(sc.Text())
	cmd, arg := splitCommand(line)

	switch cmd {
	case "select":
		id, err := strconv.Atoi(arg)
		if err != nil {
			fmt.Printf("Invalid game ID: %s\n", arg)
			return true
		}
		ctrl.Store().ToggleSelect(id)
	case "filter":
		if arg == "" {
			fmt.Printf("หมวดหมู่: %s, %s, %s\n", lending.FilterAll, lending.FilterPopular, strings.Join(lending.Categories(), ", "))
			return true
		}
		*filter = arg
	case "confirm":
		if err := ctrl.ConfirmSelection(); err != nil {
			fmt.Println(err)
		}
	case "search":
		ctrl.GoToSearch()
	case "return":
		handleReturn(sc, ctrl)
	case "manage":
		passcode, err := readPasscode("Librarian passcode: ")
		if err != nil {
			fmt.Printf("Error reading passcode: %v\n", err)
			return true
		}
		if err := ctrl.EnterManage(passcode); err != nil {
			fmt.Println(err)
		}
	case "reset":
		fmt.Print("ลบข้อมูลทั้งหมดและกลับไปใช้ชุดข้อมูลเริ่มต้น? (y/n): ")
		if sc.Scan() && strings.EqualFold(strings.TrimSpace(sc.Text()), "y") {
			ctrl.Store().ResetToSeed()
			fmt.Println("Catalog reset to seed data.")
		}
	case "exit":
		return false
	case "":
	default:
		fmt.Println("Unknown command. Use: select, filter, confirm, search, return, manage, reset, exit.")
	}
	return true
}

func handleSearch(sc *bufio.Scanner, ctrl *lending.Controller) {
	fmt.Print("\nค้นหาบอร์ดเกม (select <id>, confirm, back, or a search term)\n> ")
	if !sc.Scan() {
		ctrl.GoToList()
		return
	}
	line := strings.TrimSpace(sc.Text())
	cmd, arg := splitCommand(line)

	switch cmd {
	case "back":
		ctrl.GoToList()
	case "select":
		id, err := strconv.Atoi(arg)
		if err != nil {
			fmt.Printf("Invalid game ID: %s\n", arg)
			return
		}
		ctrl.Store().ToggleSelect(id)
	case "confirm":
		if err := ctrl.ConfirmSelection(); err != nil {
			fmt.Println(err)
		}
	default:
		results := ctrl.SearchGames(line)
		if len(results) == 0 {
			fmt.Printf("ไม่พบบอร์ดเกมที่ตรงกับ \"%s\"\n", line)
			return
		}
		printGames(results)
	}
}

func handleBorrowForm(sc *bufio.Scanner, ctrl *lending.Controller) {
	fmt.Println("\n--- กรอกข้อมูลผู้ยืม ---")
	for _, g := range ctrl.Store().Selected() {
		fmt.Printf("  - %s\n", g.Name)
	}
	fmt.Println("(พิมพ์ back เพื่อกลับไปเลือกบอร์ดเกม)")

	studentID, ok := prompt(sc, "เลขประจำตัวนักศึกษา: ")
	if !ok || strings.EqualFold(studentID, "back") {
		ctrl.Back()
		return
	}
	classroom, ok := prompt(sc, "ห้องเรียน: ")
	if !ok {
		ctrl.Back()
		return
	}
	players, ok := prompt(sc, "จำนวนผู้เล่น: ")
	if !ok {
		ctrl.Back()
		return
	}
	major, ok := prompt(sc, "สาขาวิชา: ")
	if !ok {
		ctrl.Back()
		return
	}

	fmt.Println("กำลังส่งข้อมูล...")
	result, err := ctrl.SubmitBorrow(context.Background(), studentID, classroom, players, major)
	if err != nil {
		fmt.Println(err)
		return
	}
	if !result.OK {
		fmt.Println(result.Message)
	}
}

func handleBorrowSuccess(sc *bufio.Scanner, ctrl *lending.Controller) {
	fmt.Println("\nยืมบอร์ดเกมสำเร็จ!")
	fmt.Println("กรุณาคืนบอร์ดเกมตามขั้นตอนดังนี้:")
	fmt.Println("  1. ไปที่หน้าเลือกบอร์ดเกม")
	fmt.Println("  2. ใช้คำสั่ง return และใส่เลขประจำตัวของนักศึกษา")
	fmt.Print("กด Enter เพื่อกลับไปหน้าหลัก")
	sc.Scan()
	ctrl.AcknowledgeSuccess()
}

// handleReturn runs the return overlay: student id plus one or more game
// names, submitted concurrently.
func handleReturn(sc *bufio.Scanner, ctrl *lending.Controller) {
	fmt.Println("\n--- คืนบอร์ดเกม ---")
	printGames(ctrl.Store().Games())

	studentID, ok := prompt(sc, "เลขประจำตัวนักศึกษา: ")
	if !ok {
		return
	}
	namesLine, ok := prompt(sc, "ชื่อบอร์ดเกมที่คืน (คั่นด้วยเครื่องหมายจุลภาค): ")
	if !ok {
		return
	}

	var games []string
	for _, name := range strings.Split(namesLine, ",") {
		if name = strings.TrimSpace(name); name != "" {
			games = append(games, name)
		}
	}

	fmt.Println("กำลังดำเนินการ...")
	result, err := ctrl.SubmitReturn(context.Background(), studentID, games)
	if err != nil {
		fmt.Println(err)
		return
	}
	if result.OK {
		fmt.Println("คืนบอร์ดเกมสำเร็จ!")
	} else {
		fmt.Println(result.Message)
	}
}

func handleManage(sc *bufio.Scanner, ctrl *lending.Controller) {
	fmt.Print("\n--- จัดการบอร์ดเกม --- (add, edit, delete, list, passcode, back)\n> ")
	if !sc.Scan() {
		ctrl.GoToList()
		return
	}
	store := ctrl.Store()

	switch strings.TrimSpace(sc.Text()) {
	case "add":
		name, _ := prompt(sc, "ชื่อบอร์ดเกม: ")
		description, _ := prompt(sc, "คำอธิบาย: ")
		imageURL, _ := prompt(sc, "URL รูปภาพ: ")
		category, _ := prompt(sc, fmt.Sprintf("หมวดหมู่ (%s): ", strings.Join(lending.Categories(), ", ")))
		popular, _ := prompt(sc, "เกมยอดนิยม? (y/n): ")
		if name == "" || description == "" || imageURL == "" {
			fmt.Println(lending.ErrMissingFields)
			return
		}
		game := store.Add(name, description, imageURL, category, strings.EqualFold(popular, "y"))
		fmt.Printf("Added game ID %d\n", game.ID)
	case "edit":
		idStr, _ := prompt(sc, "Game ID: ")
		id, err := strconv.Atoi(idStr)
		if err != nil {
			fmt.Printf("Invalid game ID: %s\n", idStr)
			return
		}
		games := store.Games()
		var current *lending.BoardGame
		for i := range games {
			if games[i].ID == id {
				current = &games[i]
				break
			}
		}
		if current == nil {
			fmt.Printf("Game %d not found\n", id)
			return
		}
		fmt.Println("(เว้นว่างเพื่อใช้ค่าเดิม)")
		if name, _ := prompt(sc, fmt.Sprintf("ชื่อบอร์ดเกม [%s]: ", current.Name)); name != "" {
			current.Name = name
		}
		if description, _ := prompt(sc, "คำอธิบาย: "); description != "" {
			current.Description = description
		}
		if imageURL, _ := prompt(sc, "URL รูปภาพ: "); imageURL != "" {
			current.ImageURL = imageURL
		}
		if category, _ := prompt(sc, fmt.Sprintf("หมวดหมู่ [%s]: ", current.Category)); category != "" {
			current.Category = category
		}
		store.Update(*current)
		fmt.Println("แก้ไขบอร์ดเกมเรียบร้อย")
	case "delete":
		idsLine, _ := prompt(sc, "Game IDs (comma separated): ")
		var ids []int
		for _, part := range strings.Split(idsLine, ",") {
			if id, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			fmt.Println("No valid IDs given.")
			return
		}
		fmt.Printf("คุณต้องการลบบอร์ดเกมที่เลือก %d รายการใช่หรือไม่? (y/n): ", len(ids))
		if sc.Scan() && strings.EqualFold(strings.TrimSpace(sc.Text()), "y") {
			store.Delete(ids)
			fmt.Println("ลบบอร์ดเกมเรียบร้อย")
		}
	case "list":
		printGames(store.Games())
	case "passcode":
		passcode, err := readPasscode("New passcode: ")
		if err != nil {
			fmt.Printf("Error reading passcode: %v\n", err)
			return
		}
		again, err := readPasscode("Repeat passcode: ")
		if err != nil {
			fmt.Printf("Error reading passcode: %v\n", err)
			return
		}
		if passcode != again {
			fmt.Println("Passcodes do not match.")
			return
		}
		if err := store.SetPasscode(passcode); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Println("Passcode updated.")
	case "back":
		ctrl.GoToList()
	default:
		fmt.Println("Unknown command. Use: add, edit, delete, list, passcode, back.")
	}
}

// ------------------ Helpers ------------------

// printGames lists games with selection and popularity markers.
func printGames(games []lending.BoardGame) {
	if len(games) == 0 {
		fmt.Println("ยังไม่มีบอร์ดเกมในระบบ")
		return
	}
	fmt.Printf("%-5s %-4s %-25s %-14s %-8s %s\n", "ID", "Sel", "Name", "Category", "Popular", "Description")
	fmt.Println(strings.Repeat("-", 100))
	for _, g := range games {
		sel := " "
		if g.Selected {
			sel = "x"
		}
		popular := ""
		if g.IsPopular {
			popular = "★"
		}
		fmt.Printf("%-5d [%s]  %-25s %-14s %-8s %s\n",
			g.ID, sel, truncateString(g.Name, 25), g.Category, popular, truncateString(g.Description, 40))
	}
}

// prompt reads one trimmed line after printing label. ok is false when
// stdin is closed.
func prompt(sc *bufio.Scanner, label string) (string, bool) {
	fmt.Print(label)
	if !sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(sc.Text()), true
}

// splitCommand splits a line into the leading command word and the rest.
func splitCommand(line string) (string, string) {
	parts := strings.SplitN(line, " ", 2)
	cmd := strings.ToLower(strings.TrimSpace(parts[0]))
	arg := ""
	if len(parts) > 1 {
		arg = strings.TrimSpace(parts[1])
	}
	return cmd, arg
}

// readPasscode securely reads a passcode with masking.
func readPasscode(label string) (string, error) {
	fmt.Print(label)
	bytePasscode, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println()
	return strings.TrimSpace(string(bytePasscode)), nil
}

func truncateString(s string, maxLength int) string {
	r := []rune(s)
	if len(r) <= maxLength {
		return s
	}
	return string(r[:maxLength-3]) + "..."
}
