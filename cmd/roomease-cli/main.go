// roomease-cli 是针对RoomEase服务的运维命令行工具，
// 通过HTTP API完成种子数据写入、报表下载和一致性对账。
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"roomease-http-service/pkg/client"
)

func main() {
	_ = godotenv.Load()

	var baseURL string

	rootCmd := &cobra.Command{
		Use:   "roomease-cli",
		Short: "RoomEase management CLI",
	}
	rootCmd.PersistentFlags().StringVar(&baseURL, "server", defaultServer(), "RoomEase server base URL")

	rootCmd.AddCommand(
		seedCmd(&baseURL),
		exportCmd(&baseURL),
		reconcileCmd(&baseURL),
		listRoomsCmd(&baseURL),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultServer() string {
	if v := os.Getenv("ROOMEASE_SERVER"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

// seedCmd 写入演示数据：三个房间、三名租户和一笔支付
func seedCmd(baseURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed demo rooms and tenants",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.New(*baseURL)

			rent := func(v int64) *int64 { return &v }
			rooms := []client.RoomRequest{
				{Name: "Room 101", Rent: rent(120000)},
				{Name: "Room 102", Rent: rent(90000)},
				{Name: "Room 201", Rent: rent(150000), Status: "reserved"},
			}
			for _, r := range rooms {
				room, err := c.CreateRoom(r)
				if err != nil {
					return fmt.Errorf("create room %q: %v", r.Name, err)
				}
				fmt.Printf("created room %s (id=%d)\n", room.Name, room.ID)
			}

			roomName := func(v string) *string { return &v }
			tenants := []client.TenantRequest{
				{Name: "Alice", RoomName: roomName("Room 101")},
				{Name: "Bob", RoomName: roomName("Room 101")},
				{Name: "Carol", RoomName: roomName("Room 102")},
			}
			var first *client.Tenant
			for _, t := range tenants {
				tenant, err := c.CreateTenant(t)
				if err != nil {
					return fmt.Errorf("create tenant %q: %v", t.Name, err)
				}
				fmt.Printf("created tenant %s (id=%d, room=%s)\n", tenant.Name, tenant.ID, tenant.RoomName)
				if first == nil {
					first = tenant
				}
			}

			if first != nil {
				if err := c.RecordPayment(first.ID, 60000); err != nil {
					return fmt.Errorf("record payment: %v", err)
				}
				fmt.Printf("recorded payment for %s\n", first.Name)
			}
			return nil
		},
	}
}

// exportCmd 下载入住报表
func exportCmd(baseURL *string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the occupancy report as xlsx",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.New(*baseURL)
			data, err := c.DownloadReport()
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write report: %v", err)
			}
			fmt.Printf("report written to %s (%d bytes)\n", output, len(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "occupancy_report.xlsx", "Output file path")
	return cmd
}

// reconcileCmd 触发一次一致性对账
func reconcileCmd(baseURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Repair room statuses that drifted from tenant assignments",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.New(*baseURL)
			repaired, err := c.Reconcile()
			if err != nil {
				return err
			}
			fmt.Printf("reconcile complete, %d room(s) repaired\n", repaired)
			return nil
		},
	}
}

// listRoomsCmd 打印房间列表
func listRoomsCmd(baseURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rooms",
		Short: "List rooms with status and tenants",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.New(*baseURL)
			rooms, total, err := c.ListRooms(1, 100)
			if err != nil {
				return err
			}

			fmt.Printf("%-6s  %-20s  %-10s  %-10s  %s\n", "ID", "Name", "Status", "Rent", "Tenants")
			for _, room := range rooms {
				fmt.Printf("%-6d  %-20s  %-10s  %-10.2f  %v\n",
					room.ID, room.Name, room.Status, float64(room.Rent)/100, room.TenantNames)
			}
			fmt.Printf("total: %d\n", total)
			return nil
		},
	}
}
