package diag

import (
	"net/netip"
	"testing"

	"github.com/goccy/go-yaml"
	"golang.org/x/sys/unix"

	"github.com/truenas/go-netif/netlink"
)

func TestBuildRequestLayout(t *testing.T) {
	buf := buildRequest(unix.AF_INET, unix.IPPROTO_TCP, StatesAll)
	if len(buf) != diagReqLen {
		t.Fatalf("request length = %d, want %d", len(buf), diagReqLen)
	}
	if buf[0] != unix.AF_INET || buf[1] != unix.IPPROTO_TCP {
		t.Errorf("family/protocol = %d/%d", buf[0], buf[1])
	}
	if got := native.Uint32(buf[4:8]); got != StatesAll {
		t.Errorf("states = %#x, want %#x", got, StatesAll)
	}
	// the sockid stays zeroed to wildcard the dump
	for i := 8; i < diagReqLen; i++ {
		if buf[i] != 0 {
			t.Fatalf("sockid byte %d = %#x, want 0", i, buf[i])
		}
	}
}

func sockFixture(family uint8) []byte {
	buf := make([]byte, diagMsgLen)
	buf[0] = family
	buf[1] = StateEstablished
	buf[4], buf[5] = 0x1F, 0x90 // sport 8080
	buf[6], buf[7] = 0x01, 0xBB // dport 443
	if family == unix.AF_INET {
		copy(buf[8:12], []byte{192, 168, 1, 10})
		copy(buf[24:28], []byte{93, 184, 216, 34})
	} else {
		copy(buf[8:24], netip.MustParseAddr("2001:db8::1").AsSlice())
		copy(buf[24:40], netip.MustParseAddr("2001:db8::2").AsSlice())
	}
	native.PutUint32(buf[64:68], 1000)  // uid
	native.PutUint32(buf[68:72], 54321) // inode
	return buf
}

func TestParseSockInfoV4(t *testing.T) {
	info, ok := parseSockInfo(netlink.Message{Type: msgDiagByFamily, Data: sockFixture(unix.AF_INET)})
	if !ok {
		t.Fatal("parseSockInfo rejected a well-formed v4 record")
	}
	if info.State != StateEstablished {
		t.Errorf("state = %d, want established", info.State)
	}
	if info.SPort != 8080 || info.DPort != 443 {
		t.Errorf("ports = %d/%d, want 8080/443", info.SPort, info.DPort)
	}
	if info.Src != netip.MustParseAddr("192.168.1.10") {
		t.Errorf("src = %v, want 192.168.1.10", info.Src)
	}
	if info.Dst != netip.MustParseAddr("93.184.216.34") {
		t.Errorf("dst = %v, want 93.184.216.34", info.Dst)
	}
	if info.UID != 1000 || info.INode != 54321 {
		t.Errorf("uid/inode = %d/%d, want 1000/54321", info.UID, info.INode)
	}
}

func TestParseSockInfoV6(t *testing.T) {
	info, ok := parseSockInfo(netlink.Message{Type: msgDiagByFamily, Data: sockFixture(unix.AF_INET6)})
	if !ok {
		t.Fatal("parseSockInfo rejected a well-formed v6 record")
	}
	if info.Src != netip.MustParseAddr("2001:db8::1") {
		t.Errorf("src = %v, want 2001:db8::1", info.Src)
	}
	if info.Dst != netip.MustParseAddr("2001:db8::2") {
		t.Errorf("dst = %v, want 2001:db8::2", info.Dst)
	}
}

func TestParseSockInfoShortRecord(t *testing.T) {
	if _, ok := parseSockInfo(netlink.Message{Data: make([]byte, diagMsgLen-1)}); ok {
		t.Error("short record not dropped")
	}
}

func TestSockInfosSkipShort(t *testing.T) {
	msgs := []netlink.Message{
		{Data: sockFixture(unix.AF_INET)},
		{Data: make([]byte, 10)},
		{Data: sockFixture(unix.AF_INET6)},
	}
	infos := sockInfosFromMessages(msgs)
	if len(infos) != 2 {
		t.Errorf("got %d records, want 2 with the short one dropped", len(infos))
	}
}

func TestConfiguredRequestLayout(t *testing.T) {
	// The default config excludes listeners, so a client built from it
	// must put exactly that mask and protocol on the wire.
	buf := buildRequest(unix.AF_INET6, DefaultConfig.Protocol, DefaultConfig.States)
	if buf[1] != unix.IPPROTO_TCP {
		t.Errorf("protocol = %d, want IPPROTO_TCP", buf[1])
	}
	states := native.Uint32(buf[4:8])
	if states&(1<<StateListen) != 0 {
		t.Errorf("states = %#x, listener bit should be masked out", states)
	}
	if states != StatesAll&^(1<<StateListen) {
		t.Errorf("states = %#x, want %#x", states, StatesAll&^(1<<StateListen))
	}
}

func TestConfigDefaults(t *testing.T) {
	var c Config
	if err := yaml.Unmarshal([]byte("protocol: 17\n"), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if c.Protocol != 17 {
		t.Errorf("protocol = %d, want 17", c.Protocol)
	}
	if c.States != DefaultConfig.States {
		t.Errorf("states = %#x, want default %#x", c.States, DefaultConfig.States)
	}
}
