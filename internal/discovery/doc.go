// Package discovery finds label printers on the local network over mDNS.
//
// Network label printers (Zebra and most others) advertise their raw
// printing port as a "_pdl-datastream._tcp" DNS-SD service. The scanner
// browses for that service for a fixed time and returns every printer
// that answered with an address:
//
//	scanner := discovery.NewScanner()
//	scanner.Timeout = 5 * time.Second
//	found, err := scanner.Scan(ctx)
//	if err != nil {
//	    return err
//	}
//	for _, p := range found {
//	    fmt.Println(p, p.Endpoint())
//	}
//
// Discovery needs multicast on the interface and UDP port 5353 open.
package discovery
