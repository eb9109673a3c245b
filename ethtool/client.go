package ethtool

import (
	"errors"
	"fmt"

	"github.com/truenas/go-netif/netlink"
)

// Client owns one generic netlink socket with the ethtool family id
// resolved. It is not safe for concurrent use; see Shared for a
// process-wide serialised instance.
type Client struct {
	sock     *netlink.Socket
	familyID uint16

	featureNames  map[uint32]string
	linkModeNames map[uint32]string
}

// NewClient opens a generic netlink socket and resolves the "ethtool"
// family.
func NewClient() (*Client, error) {
	sock, err := netlink.NewGenericSocket()
	if err != nil {
		return nil, err
	}
	c := &Client{sock: sock}
	if err := c.resolveFamily(); err != nil {
		sock.Close()
		return nil, err
	}
	return c, nil
}

func (c *Client) Close() error {
	if c.sock == nil {
		return nil
	}
	return c.sock.Close()
}

func (c *Client) resolveFamily() error {
	attrs := netlink.PackAttrString(ctrlAttrFamilyName, "ethtool")
	payload := netlink.GenlPayload(ctrlCmdGetFamily, 1, attrs)
	msgs, err := c.sock.Request(netlink.GenlIDCtrl, netlink.FlagRequest|netlink.FlagAck, payload)
	if err != nil {
		return fmt.Errorf("resolving ethtool family: %w", err)
	}
	id, err := familyIDFromMessages(msgs)
	if err != nil {
		return err
	}
	c.familyID = id
	return nil
}

func familyIDFromMessages(msgs []netlink.Message) (uint16, error) {
	for _, m := range msgs {
		if m.Type != netlink.GenlIDCtrl {
			continue
		}
		if id, ok := netlink.ParseAttrs(m.Data, netlink.GenlHeaderLen).Uint16(ctrlAttrFamilyID); ok {
			return id, nil
		}
	}
	return 0, errors.New("ethtool: controller reply carried no family id")
}

// makeHeader builds the nested ETHTOOL_A_HEADER every command starts
// with.
func makeHeader(ifname string) []byte {
	return netlink.PackAttrNested(attrHeader, netlink.PackAttrString(attrHeaderDevName, ifname))
}

// request sends one ethtool command and returns the attribute maps of
// the family's reply messages, inner genl header already skipped.
func (c *Client) request(cmd uint8, attrs []byte) ([]netlink.AttributeMap, error) {
	if err := c.sock.EnsureConnected(); err != nil {
		return nil, err
	}
	payload := netlink.GenlPayload(cmd, 1, attrs)
	msgs, err := c.sock.Request(c.familyID, netlink.FlagRequest|netlink.FlagAck, payload)
	if err != nil {
		return nil, err
	}
	var out []netlink.AttributeMap
	for _, m := range msgs {
		if m.Type == c.familyID {
			out = append(out, netlink.ParseAttrs(m.Data, netlink.GenlHeaderLen))
		}
	}
	return out, nil
}
