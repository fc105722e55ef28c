package consul

import (
	"fmt"
	"log/slog"

	consulapi "github.com/hashicorp/consul/api"
)

// Registration describes how this process announces itself to the agent.
type Registration struct {
	Name     string
	Address  string
	Port     int
	CheckURL string
	// GRPCCheck is "host:port/service" for agents probing the grpc health service.
	GRPCCheck string
}

func (r Registration) ID() string {
	return fmt.Sprintf("%s-%s-%d", r.Name, r.Address, r.Port)
}

func NewClient(address string) (*consulapi.Client, error) {
	config := consulapi.DefaultConfig()
	config.Address = address
	client, err := consulapi.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create consul client: %w", err)
	}
	return client, nil
}

func RegisterService(client *consulapi.Client, r Registration) error {
	if r.Name == "" || r.Port <= 0 {
		return fmt.Errorf("invalid consul registration %q:%d", r.Name, r.Port)
	}
	reg := &consulapi.AgentServiceRegistration{
		ID:      r.ID(),
		Name:    r.Name,
		Address: r.Address,
		Port:    r.Port,
	}
	switch {
	case r.CheckURL != "":
		reg.Check = newCheck()
		reg.Check.HTTP = r.CheckURL
	case r.GRPCCheck != "":
		reg.Check = newCheck()
		reg.Check.GRPC = r.GRPCCheck
	}
	if err := client.Agent().ServiceRegister(reg); err != nil {
		return fmt.Errorf("failed to register service %s: %w", r.Name, err)
	}
	slog.Info("service registered with consul", slog.String("ServiceID", reg.ID))
	return nil
}

func newCheck() *consulapi.AgentServiceCheck {
	return &consulapi.AgentServiceCheck{
		Interval:                       "10s",
		Timeout:                        "2s",
		DeregisterCriticalServiceAfter: "1m",
	}
}

func DeregisterService(client *consulapi.Client, r Registration) error {
	if err := client.Agent().ServiceDeregister(r.ID()); err != nil {
		return fmt.Errorf("failed to deregister service %s: %w", r.ID(), err)
	}
	slog.Info("service deregistered from consul", slog.String("ServiceID", r.ID()))
	return nil
}

// GetServiceAddress returns the address of the first healthy instance of serviceName.
func GetServiceAddress(client *consulapi.Client, serviceName string) (string, int, error) {
	entries, _, err := client.Health().Service(serviceName, "", true, nil)
	if err != nil {
		return "", 0, fmt.Errorf("failed to query consul for %s: %w", serviceName, err)
	}
	if len(entries) == 0 {
		return "", 0, fmt.Errorf("no healthy instance of %s", serviceName)
	}
	svc := entries[0].Service
	address := svc.Address
	if address == "" {
		address = entries[0].Node.Address
	}
	return address, svc.Port, nil
}
