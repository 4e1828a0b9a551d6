package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"order_manager/internal/config"
	"order_manager/pkg/imagehost"
	"order_manager/pkg/orderapi"
)

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg := config.Load()
	serverURL := getEnv("ORDER_API_URL", "http://localhost:"+cfg.ServerPort)
	client := orderapi.NewClient(serverURL)
	uploader := imagehost.NewClient(cfg.ImageHostURL, cfg.ImageUploadPreset)
	ctx := context.Background()

	var err error
	switch os.Args[1] {
	case "list":
		err = runList(ctx, client)
	case "get":
		err = runGet(ctx, client, os.Args[2:])
	case "create":
		err = runCreate(ctx, client, uploader, os.Args[2:])
	case "update":
		err = runUpdate(ctx, client, uploader, os.Args[2:])
	case "delete":
		err = runDelete(ctx, client, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: ordercli <command> [flags]

Commands:
  list                        list all orders
  get <id>                    show one order
  create [flags]              place a new order
  update <id> [flags]         change fields of an order
  delete <id> [-y]            delete an order

Create/update flags: -customer -product -quantity -price -image <file>`)
}

func runList(ctx context.Context, client *orderapi.Client) error {
	orders, err := client.List(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Println("No orders found.")
		return nil
	}

	table := tablewriter.NewTable(os.Stdout)
	table.Header([]string{"ID", "Customer", "Product", "Qty", "Price", "Total", "Image"})
	for _, o := range orders {
		// Total is display-only, never persisted.
		total := o.Price * float64(o.Quantity)
		if err := table.Append([]string{
			strconv.FormatUint(uint64(o.ID), 10),
			o.CustomerName,
			o.Product,
			strconv.Itoa(o.Quantity),
			fmt.Sprintf("%.2f", o.Price),
			fmt.Sprintf("%.2f", total),
			o.ProductImage,
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

func runGet(ctx context.Context, client *orderapi.Client, args []string) error {
	id, err := parseIDArg(args)
	if err != nil {
		return err
	}
	order, err := client.Get(ctx, id)
	if err != nil {
		return err
	}
	printOrder(order)
	return nil
}

func runCreate(ctx context.Context, client *orderapi.Client, uploader *imagehost.Client, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	customer := fs.String("customer", "", "customer name")
	product := fs.String("product", "", "product name")
	quantity := fs.Int("quantity", 1, "quantity (minimum 1)")
	price := fs.Float64("price", 0, "price per unit")
	imagePath := fs.String("image", "", "product image file to upload")
	fs.Parse(args)

	priceSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "price" {
			priceSet = true
		}
	})
	if err := checkCreateInput(*customer, *product, priceSet, *price); err != nil {
		return err
	}
	*quantity = clampQuantity(*quantity)

	imageURL, err := uploadIfSet(ctx, uploader, *imagePath)
	if err != nil {
		// Upload failure aborts the submit; no order is created.
		return err
	}

	order, err := client.Create(ctx, &orderapi.CreateOrderRequest{
		CustomerName: *customer,
		Product:      *product,
		ProductImage: imageURL,
		Quantity:     quantity,
		Price:        price,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Order %d created.\n", order.ID)
	printOrder(order)
	return nil
}

func runUpdate(ctx context.Context, client *orderapi.Client, uploader *imagehost.Client, args []string) error {
	id, err := parseIDArg(args)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("update", flag.ExitOnError)
	customer := fs.String("customer", "", "customer name")
	product := fs.String("product", "", "product name")
	quantity := fs.Int("quantity", 1, "quantity (minimum 1)")
	price := fs.Float64("price", 0, "price per unit")
	imagePath := fs.String("image", "", "product image file to upload")
	fs.Parse(args[1:])

	// Only flags the user actually set go into the payload; everything else
	// keeps its stored value.
	req := &orderapi.UpdateOrderRequest{}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "customer":
			req.CustomerName = customer
		case "product":
			req.Product = product
		case "quantity":
			*quantity = clampQuantity(*quantity)
			req.Quantity = quantity
		case "price":
			req.Price = price
		}
	})

	if *imagePath != "" {
		imageURL, err := uploadIfSet(ctx, uploader, *imagePath)
		if err != nil {
			return err
		}
		req.ProductImage = &imageURL
	}

	order, err := client.Update(ctx, id, req)
	if err != nil {
		return err
	}
	fmt.Printf("Order %d updated.\n", order.ID)
	printOrder(order)
	return nil
}

func runDelete(ctx context.Context, client *orderapi.Client, args []string) error {
	id, err := parseIDArg(args)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	yes := fs.Bool("y", false, "skip confirmation")
	fs.Parse(args[1:])

	if !*yes && !confirm(fmt.Sprintf("Are you sure you want to delete order %d?", id)) {
		fmt.Println("Aborted.")
		return nil
	}

	resp, err := client.Delete(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("%s: #%d %s for %s\n", resp.Message, resp.Order.ID, resp.Order.Product, resp.Order.CustomerName)
	return nil
}

// checkCreateInput mirrors the server-side required checks so a bad submit
// never leaves the client.
func checkCreateInput(customer, product string, priceSet bool, price float64) error {
	if strings.TrimSpace(customer) == "" {
		return fmt.Errorf("customer name is required")
	}
	if strings.TrimSpace(product) == "" {
		return fmt.Errorf("product name is required")
	}
	if !priceSet {
		return fmt.Errorf("price is required")
	}
	if price < 1 {
		return fmt.Errorf("price must be at least 1")
	}
	return nil
}

func clampQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}

func uploadIfSet(ctx context.Context, uploader *imagehost.Client, path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image file: %w", err)
	}
	url, err := uploader.Upload(ctx, filepath.Base(path), data)
	if err != nil {
		return "", fmt.Errorf("image upload failed: %w", err)
	}
	return url, nil
}

func printOrder(o *orderapi.Order) {
	fmt.Printf("  Customer: %s\n", o.CustomerName)
	fmt.Printf("  Product:  %s\n", o.Product)
	fmt.Printf("  Quantity: %d\n", o.Quantity)
	fmt.Printf("  Price:    %.2f\n", o.Price)
	fmt.Printf("  Total:    %.2f\n", o.Price*float64(o.Quantity))
	if o.ProductImage != "" {
		fmt.Printf("  Image:    %s\n", o.ProductImage)
	}
}

func parseIDArg(args []string) (uint, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("order id is required")
	}
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid order id %q", args[0])
	}
	return uint(id), nil
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
