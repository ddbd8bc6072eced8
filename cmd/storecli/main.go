package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"storefront/internal/cart"
	"storefront/internal/client"

	"github.com/sirupsen/logrus"
)

const usage = `storecli - storefront shopping client

Usage:
  storecli products                 list products
  storecli show                     show the current cart
  storecli add <product-id>         add one unit of a product to the cart
  storecli remove <product-id>      remove a product from the cart
  storecli qty <product-id> <n>     set the quantity of a product
  storecli clear                    empty the cart
  storecli checkout [flags]         place an order from the cart

Environment:
  STOREFRONT_URL   server base URL (default http://localhost:8080)
  CART_FILE        cart file path (default under the user config dir)
`

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	baseURL := os.Getenv("STOREFRONT_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	api := client.NewStorefront(baseURL, 10*time.Second, logger)

	store, err := openCart()
	if err != nil {
		fatalf("Failed to open cart: %v", err)
	}

	switch os.Args[1] {
	case "products":
		runProducts(api)
	case "show":
		runShow(store)
	case "add":
		runAdd(api, store, os.Args[2:])
	case "remove":
		runRemove(store, os.Args[2:])
	case "qty":
		runQty(store, os.Args[2:])
	case "clear":
		if err := store.Clear(); err != nil {
			fatalf("Failed to clear cart: %v", err)
		}
		fmt.Println("Cart cleared.")
	case "checkout":
		runCheckout(api, store, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func openCart() (*cart.Store, error) {
	var storage *cart.FileStorage
	if path := os.Getenv("CART_FILE"); path != "" {
		storage = cart.NewFileStorage(path)
	} else {
		var err error
		storage, err = cart.DefaultFileStorage()
		if err != nil {
			return nil, err
		}
	}
	return cart.NewStore(storage)
}

func runProducts(api *client.Storefront) {
	products, err := api.ListProducts()
	if err != nil {
		fatalf("Failed to list products: %v", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tSTOCK")
	for _, p := range products {
		stock := "unlimited"
		if p.Stock != nil {
			stock = strconv.Itoa(*p.Stock)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.Name, p.Price.StringFixed(2), stock)
	}
	w.Flush()
}

func runShow(store *cart.Store) {
	items := store.Items()
	if len(items) == 0 {
		fmt.Println("Cart is empty.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tQTY")
	for _, item := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", item.ProductID, item.Name, item.Price.StringFixed(2), item.Quantity)
	}
	w.Flush()
	fmt.Printf("Items: %d  Total: %s\n", store.ItemCount(), store.Total().StringFixed(2))
}

func runAdd(api *client.Storefront, store *cart.Store, args []string) {
	if len(args) != 1 {
		fatalf("Usage: storecli add <product-id>")
	}

	product, err := api.GetProduct(args[0])
	if err != nil {
		fatalf("Failed to fetch product: %v", err)
	}
	if !product.Active {
		fatalf("Product '%s' is not available", product.Name)
	}

	err = store.AddItem(cart.ProductSummary{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		ImageURL:  product.ImageURL,
	})
	if err != nil {
		fatalf("Failed to update cart: %v", err)
	}
	fmt.Printf("Added '%s' to cart. Items: %d  Total: %s\n", product.Name, store.ItemCount(), store.Total().StringFixed(2))
}

func runRemove(store *cart.Store, args []string) {
	if len(args) != 1 {
		fatalf("Usage: storecli remove <product-id>")
	}
	productID, err := strconv.Atoi(args[0])
	if err != nil {
		fatalf("Invalid product id: %s", args[0])
	}
	if err := store.RemoveItem(productID); err != nil {
		fatalf("Failed to update cart: %v", err)
	}
	fmt.Printf("Removed product %d. Items: %d  Total: %s\n", productID, store.ItemCount(), store.Total().StringFixed(2))
}

func runQty(store *cart.Store, args []string) {
	if len(args) != 2 {
		fatalf("Usage: storecli qty <product-id> <quantity>")
	}
	productID, err := strconv.Atoi(args[0])
	if err != nil {
		fatalf("Invalid product id: %s", args[0])
	}
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		fatalf("Invalid quantity: %s", args[1])
	}
	if err := store.UpdateQuantity(productID, quantity); err != nil {
		fatalf("Failed to update cart: %v", err)
	}
	fmt.Printf("Items: %d  Total: %s\n", store.ItemCount(), store.Total().StringFixed(2))
}

func runCheckout(api *client.Storefront, store *cart.Store, args []string) {
	fs := flag.NewFlagSet("checkout", flag.ExitOnError)
	info := cart.CheckoutInfo{}
	fs.StringVar(&info.CustomerName, "name", "", "customer name")
	fs.StringVar(&info.CustomerEmail, "email", "", "customer email")
	fs.StringVar(&info.CustomerPhone, "phone", "", "customer phone")
	fs.StringVar(&info.ShippingAddress, "address", "", "shipping address")
	fs.StringVar(&info.ShippingCity, "city", "", "shipping city")
	fs.StringVar(&info.ShippingState, "state", "", "shipping state")
	fs.StringVar(&info.ShippingZip, "zip", "", "shipping zip code")
	fs.StringVar(&info.PaymentMethod, "payment", "", "payment method")
	fs.StringVar(&info.Notes, "notes", "", "order notes")
	email := fs.String("login-email", "", "log in before checkout (optional)")
	password := fs.String("login-password", "", "password for -login-email")
	_ = fs.Parse(args)

	if *email != "" {
		authResp, err := api.Login(*email, *password)
		if err != nil {
			fatalf("Login failed: %v", err)
		}
		if !authResp.Authenticated {
			fatalf("Login failed: %s", authResp.ErrorMessage)
		}
	}

	req, err := cart.BuildCreateOrderRequest(store, info)
	if err != nil {
		fatalf("Checkout failed: %v", err)
	}

	order, err := api.CreateOrder(req)
	if err != nil {
		// The cart stays intact so the shopper can fix the problem and retry.
		fatalf("Checkout failed: %v", err)
	}

	if err := store.Clear(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: order placed but cart could not be cleared: %v\n", err)
	}
	fmt.Printf("Order %d placed. Total: %s  Status: %s\n", order.ID, order.Total.StringFixed(2), order.Status)
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
