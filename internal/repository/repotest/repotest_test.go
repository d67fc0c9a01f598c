package repotest

import (
	"fmt"
	"net"
	"testing"
)

func TestFreePortIsBindable(t *testing.T) {
	for i := 0; i < 5; i++ {
		port, err := freePort()
		if err != nil {
			t.Fatalf("freePort: %v", err)
		}
		if port <= 0 || port > 65535 {
			t.Fatalf("port %d out of range", port)
		}
		l, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
		if err != nil {
			t.Fatalf("port %d not bindable: %v", port, err)
		}
		_ = l.Close()
	}
}
