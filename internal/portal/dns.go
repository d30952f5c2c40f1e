package portal

import (
	"log"
	"net"

	"github.com/miekg/dns"
)

// dnsTTL is the TTL on captive answers. Short, so clients re-resolve
// quickly once the device leaves portal mode.
const dnsTTL = 60

// DNSResponder is a wildcard DNS server that answers every query with the
// access point's own address, funneling clients onto the portal page.
type DNSResponder struct {
	server *dns.Server
	apIP   net.IP
}

// NewDNSResponder creates a responder that resolves every name to apIP.
func NewDNSResponder(addr string, apIP net.IP) *DNSResponder {
	r := &DNSResponder{apIP: apIP.To4()}
	r.server = &dns.Server{Addr: addr, Net: "udp", Handler: r}
	return r
}

// Start begins serving on a background goroutine. Errors after shutdown are
// expected and ignored; anything else is logged.
func (r *DNSResponder) Start() {
	go func() {
		if err := r.server.ListenAndServe(); err != nil {
			log.Printf("portal: dns server: %v", err)
		}
	}()
}

// Stop shuts the responder down.
func (r *DNSResponder) Stop() error {
	return r.server.Shutdown()
}

// ServeDNS answers A and ANY questions with the AP address and everything
// else with an empty authoritative reply.
func (r *DNSResponder) ServeDNS(w dns.ResponseWriter, req *dns.Msg) {
	m := new(dns.Msg)
	m.SetReply(req)
	m.Authoritative = true

	for _, q := range req.Question {
		if q.Qtype != dns.TypeA && q.Qtype != dns.TypeANY {
			continue
		}
		m.Answer = append(m.Answer, &dns.A{
			Hdr: dns.RR_Header{
				Name:   q.Name,
				Rrtype: dns.TypeA,
				Class:  dns.ClassINET,
				Ttl:    dnsTTL,
			},
			A: r.apIP,
		})
	}

	if err := w.WriteMsg(m); err != nil {
		log.Printf("portal: dns reply: %v", err)
	}
}
