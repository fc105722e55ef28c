// Command cart-details prints a user's cart as reported by the gallery-store
// gRPC cart service. The service address is taken from -addr or looked up in
// Consul.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gallery-store/internal/cartrpc"
	"gallery-store/internal/consul"
	"gallery-store/pkg/logkey"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func main() {
	userID := flag.Int("user", 0, "user id whose cart to fetch")
	addr := flag.String("addr", "", "grpc address of the cart service")
	consulAddr := flag.String("consul", os.Getenv("CONSUL_HTTP_ADDR"), "consul agent address used when -addr is empty")
	service := flag.String("service", "gallery-store-grpc", "consul service name of the cart service")
	timeout := flag.Duration("timeout", 5*time.Second, "request timeout")
	flag.Parse()

	target, err := resolveAddress(*addr, *consulAddr, *service)
	if err != nil {
		slog.Error("failed to resolve cart service", slog.String(logkey.ERROR, err.Error()))
		os.Exit(1)
	}

	conn, err := grpc.Dial(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		slog.Error("failed to connect to cart service", slog.String(logkey.ERROR, err.Error()))
		os.Exit(1)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	if err := printCartDetails(ctx, os.Stdout, cartrpc.NewCartItemServiceClient(conn), *userID); err != nil {
		slog.Error("failed to fetch cart details", slog.String(logkey.ERROR, err.Error()))
		os.Exit(1)
	}
}

func resolveAddress(addr, consulAddr, service string) (string, error) {
	if addr != "" {
		return addr, nil
	}
	if consulAddr == "" {
		return "", errors.New("either -addr or -consul is required")
	}
	client, err := consul.NewClient(consulAddr)
	if err != nil {
		return "", err
	}
	host, port, err := consul.GetServiceAddress(client, service)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%d", host, port), nil
}

func printCartDetails(ctx context.Context, w io.Writer, client cartrpc.CartItemServiceClient, userID int) error {
	resp, err := client.GetCartDetails(ctx, &cartrpc.GetCartDetailsRequest{UserID: userID})
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
