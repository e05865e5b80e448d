package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"text/tabwriter"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "auth":
		handleAuth(args)
	case "property":
		handleProperty(args)
	case "tenant":
		handleTenant(args)
	case "report":
		handleReport(args)
	case "backup":
		runBackup(args)
	case "restore":
		runRestore(args)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func handleAuth(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: rentledger auth <register|login|logout|who>")
		return
	}

	subCmd := args[0]
	switch subCmd {
	case "register":
		registerUser(args[1:])
	case "login":
		loginUser(args[1:])
	case "logout":
		logoutUser()
	case "who":
		whoAmI()
	default:
		fmt.Printf("unknown auth command: %s\n", subCmd)
	}
}

func handleProperty(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: rentledger property <list|add|get|delete>")
		return
	}

	subCmd := args[0]
	switch subCmd {
	case "list":
		listProperties(args[1:])
	case "add":
		addProperty(args[1:])
	case "get":
		getProperty(args[1:])
	case "delete":
		deleteProperty(args[1:])
	default:
		fmt.Printf("unknown property command: %s\n", subCmd)
	}
}

func handleTenant(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: rentledger tenant <list|add|delete>")
		return
	}

	subCmd := args[0]
	switch subCmd {
	case "list":
		listTenants(args[1:])
	case "add":
		addTenant(args[1:])
	case "delete":
		deleteTenant(args[1:])
	default:
		fmt.Printf("unknown tenant command: %s\n", subCmd)
	}
}

func handleReport(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: rentledger report <pdf|excel>")
		return
	}

	subCmd := args[0]
	switch subCmd {
	case "pdf":
		downloadReport("pdf", args[1:])
	case "excel":
		downloadReport("excel", args[1:])
	default:
		fmt.Printf("unknown report command: %s\n", subCmd)
	}
}

// Auth commands
func registerUser(args []string) {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	username := fs.String("username", "", "username")
	password := fs.String("password", "", "password")
	email := fs.String("email", "", "contact email (optional)")

	fs.Parse(args)

	if *username == "" || *password == "" {
		fmt.Println("Error: username and password are required")
		fs.PrintDefaults()
		return
	}

	payload := map[string]string{
		"username": *username,
		"password": *password,
	}
	if *email != "" {
		payload["email"] = *email
	}

	data, _ := json.Marshal(payload)
	resp, err := http.Post(getAPIURL()+"/auth/register", "application/json", bytes.NewReader(data))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	if resp.StatusCode == 201 {
		fmt.Printf("✓ User registered: %s\n", *username)
	} else {
		fmt.Printf("✗ Registration failed: %v\n", result)
	}
}

func loginUser(args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("username", "", "username")
	password := fs.String("password", "", "password")

	fs.Parse(args)

	if *username == "" || *password == "" {
		fmt.Println("Error: username and password are required")
		fs.PrintDefaults()
		return
	}

	payload := map[string]string{"username": *username, "password": *password}
	data, _ := json.Marshal(payload)
	resp, err := http.Post(getAPIURL()+"/auth/login", "application/json", bytes.NewReader(data))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	if resp.StatusCode == 200 {
		if token, ok := result["token"].(string); ok {
			saveToken(token)
			fmt.Printf("✓ Logged in as: %s\n", *username)
		}
	} else {
		fmt.Printf("✗ Login failed: %v\n", result)
	}
}

func logoutUser() {
	os.Remove(tokenFile())
	fmt.Println("✓ Logged out")
}

func whoAmI() {
	token := loadToken()
	if token == "" {
		fmt.Println("Not logged in")
		return
	}
	fmt.Printf("✓ Logged in (token: %s...)\n", token[:20])
}

// Property commands
func listProperties(args []string) {
	_ = args
	var result struct {
		Properties []map[string]interface{} `json:"properties"`
	}
	if !getJSON("/properties", &result) {
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tADDRESS\tSTATUS\tRENT\tPROFIT")
	for _, p := range result.Properties {
		fmt.Fprintf(w, "%v\t%v\t%v\t%.2f\t%.2f\n",
			p["id"], p["address"], p["status"],
			asFloat(p["monthlyRent"]), asFloat(p["monthlyProfit"]))
	}
	w.Flush()
}

func addProperty(args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	id := fs.String("id", "", "property id (P001, P002, ...)")
	address := fs.String("address", "", "property address")
	owner := fs.String("owner", "", "owner name")
	rent := fs.Float64("rent", 0, "monthly rent")
	mortgage := fs.Float64("mortgage", 0, "monthly mortgage")
	status := fs.String("status", "Vacant", "Rented or Vacant")
	houseType := fs.String("type", "", "house type")
	bedrooms := fs.Int("bedrooms", 0, "bedroom count")

	fs.Parse(args)

	if *id == "" || *address == "" {
		fmt.Println("Error: id and address are required")
		fs.PrintDefaults()
		return
	}

	payload := map[string]interface{}{
		"id":              *id,
		"address":         *address,
		"ownerName":       *owner,
		"monthlyRent":     *rent,
		"monthlyMortgage": *mortgage,
		"status":          *status,
		"houseType":       *houseType,
		"bedrooms":        *bedrooms,
	}

	data, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", getAPIURL()+"/properties", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	addAuthHeader(req)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == 200 {
		fmt.Printf("✓ Property saved: %s\n", *id)
	} else {
		body, _ := io.ReadAll(resp.Body)
		fmt.Printf("✗ Save failed: %s\n", body)
	}
}

func getProperty(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: rentledger property get <property-id>")
		return
	}

	var p map[string]interface{}
	if !getJSON("/properties/"+args[0], &p) {
		return
	}

	out, _ := json.MarshalIndent(p, "", "  ")
	fmt.Println(string(out))
}

func deleteProperty(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: rentledger property delete <property-id>")
		return
	}

	req, _ := http.NewRequest("DELETE", getAPIURL()+"/properties/"+args[0], nil)
	addAuthHeader(req)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == 200 {
		fmt.Printf("✓ Property deleted: %s (remaining properties renumbered)\n", args[0])
	} else {
		body, _ := io.ReadAll(resp.Body)
		fmt.Printf("✗ Delete failed: %s\n", body)
	}
}

// Tenant commands
func listTenants(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	property := fs.String("property", "", "filter by property id")
	fs.Parse(args)

	path := "/tenants"
	if *property != "" {
		path = "/properties/" + *property + "/tenants"
	}

	var result struct {
		Tenants []map[string]interface{} `json:"tenants"`
	}
	if !getJSON(path, &result) {
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPROPERTY\tEMAIL\tLEASE END")
	for _, t := range result.Tenants {
		fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\n",
			t["id"], t["name"], t["propertyId"], t["email"], t["leaseEndDate"])
	}
	w.Flush()
}

func addTenant(args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	name := fs.String("name", "", "tenant name")
	property := fs.String("property", "", "property id")
	email := fs.String("email", "", "tenant email")
	phone := fs.String("phone", "", "tenant phone")
	leaseStart := fs.String("lease-start", "", "lease start (yyyy-mm-dd)")
	leaseEnd := fs.String("lease-end", "", "lease end (yyyy-mm-dd)")
	deposit := fs.Float64("deposit", 0, "deposit amount")

	fs.Parse(args)

	if *name == "" || *property == "" {
		fmt.Println("Error: name and property are required")
		fs.PrintDefaults()
		return
	}

	payload := map[string]interface{}{
		"name":           *name,
		"propertyId":     *property,
		"email":          *email,
		"phone":          *phone,
		"leaseStartDate": *leaseStart,
		"leaseEndDate":   *leaseEnd,
		"depositAmount":  *deposit,
	}

	data, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", getAPIURL()+"/tenants", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	addAuthHeader(req)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == 200 {
		fmt.Printf("✓ Tenant saved: %s\n", *name)
	} else {
		body, _ := io.ReadAll(resp.Body)
		fmt.Printf("✗ Save failed: %s\n", body)
	}
}

func deleteTenant(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: rentledger tenant delete <tenant-id>")
		return
	}

	req, _ := http.NewRequest("DELETE", getAPIURL()+"/tenants/"+args[0], nil)
	addAuthHeader(req)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == 200 {
		fmt.Printf("✓ Tenant deleted: %s\n", args[0])
	} else {
		body, _ := io.ReadAll(resp.Body)
		fmt.Printf("✗ Delete failed: %s\n", body)
	}
}

// Report commands
func downloadReport(format string, args []string) {
	fs := flag.NewFlagSet(format, flag.ExitOnError)
	out := fs.String("out", "", "output file (default: portfolio.<ext>)")
	fs.Parse(args)

	ext := format
	if format == "excel" {
		ext = "xlsx"
	}
	outFile := *out
	if outFile == "" {
		outFile = "portfolio." + ext
	}

	req, _ := http.NewRequest("GET", getAPIURL()+"/reports/"+format, nil)
	addAuthHeader(req)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		fmt.Printf("✗ Report failed: %s\n", body)
		return
	}

	f, err := os.Create(outFile)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer f.Close()

	n, err := io.Copy(f, resp.Body)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("✓ Report written: %s (%d bytes)\n", outFile, n)
}

// Backup commands
func runBackup(args []string) {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)
	path := fs.String("path", "", "server-side path for the backup file")
	fs.Parse(args)

	if *path == "" {
		fmt.Println("Error: path is required")
		fs.PrintDefaults()
		return
	}

	postSimple("/backup", map[string]string{"path": *path}, "Backup written")
}

func runRestore(args []string) {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)
	path := fs.String("path", "", "server-side path of the backup file")
	fs.Parse(args)

	if *path == "" {
		fmt.Println("Error: path is required")
		fs.PrintDefaults()
		return
	}

	postSimple("/restore", map[string]string{"path": *path}, "Database restored")
}

// Helper functions
func postSimple(path string, payload map[string]string, successMsg string) {
	data, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", getAPIURL()+path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	addAuthHeader(req)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == 200 {
		fmt.Printf("✓ %s\n", successMsg)
	} else {
		body, _ := io.ReadAll(resp.Body)
		fmt.Printf("✗ Request failed: %s\n", body)
	}
}

func getJSON(path string, out interface{}) bool {
	req, _ := http.NewRequest("GET", getAPIURL()+path, nil)
	addAuthHeader(req)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		fmt.Printf("✗ Request failed: %s\n", body)
		return false
	}

	json.NewDecoder(resp.Body).Decode(out)
	return true
}

func asFloat(v interface{}) float64 {
	f, _ := v.(float64)
	return f
}

func getAPIURL() string {
	if url := os.Getenv("RENTLEDGER_API"); url != "" {
		return url
	}
	return "http://localhost:8080/api"
}

func tokenFile() string {
	home, _ := os.UserHomeDir()
	return home + "/.rentledger/token"
}

func saveToken(token string) error {
	os.MkdirAll(os.Getenv("HOME")+"/.rentledger", 0700)
	return os.WriteFile(tokenFile(), []byte(token), 0600)
}

func loadToken() string {
	data, _ := os.ReadFile(tokenFile())
	return string(data)
}

func addAuthHeader(req *http.Request) {
	token := loadToken()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func printUsage() {
	fmt.Print(`RentLedger CLI

Usage:
  rentledger <command> [options]

Commands:
  auth      User authentication (register, login, logout, who)
  property  Property operations (list, add, get, delete)
  tenant    Tenant operations (list, add, delete)
  report    Portfolio exports (pdf, excel)
  backup    Back up the portfolio database (admin)
  restore   Restore the portfolio database (admin)
  help      Show this help message

Environment Variables:
  RENTLEDGER_API    API endpoint (default: http://localhost:8080/api)

Examples:
  rentledger auth register -username landlord -password pass
  rentledger auth login -username landlord -password pass
  rentledger property add -id P001 -address "12 High Street" -rent 950
  rentledger property list
  rentledger report pdf -out portfolio.pdf
`)
}
