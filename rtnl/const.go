package rtnl

// Message types, linux/rtnetlink.h.
const (
	RTM_NEWLINK uint16 = 16
	RTM_DELLINK uint16 = 17
	RTM_GETLINK uint16 = 18
	RTM_SETLINK uint16 = 19

	RTM_NEWADDR uint16 = 20
	RTM_DELADDR uint16 = 21
	RTM_GETADDR uint16 = 22

	RTM_NEWROUTE uint16 = 24
	RTM_DELROUTE uint16 = 25
	RTM_GETROUTE uint16 = 26

	RTM_NEWRULE uint16 = 32
	RTM_DELRULE uint16 = 33
	RTM_GETRULE uint16 = 34
)

// Address families.
const (
	FamilyUnspec uint8 = 0
	FamilyInet   uint8 = 2
	FamilyInet6  uint8 = 10
)

// Link attributes, linux/if_link.h.
const (
	IFLA_UNSPEC        uint16 = 0
	IFLA_ADDRESS       uint16 = 1
	IFLA_BROADCAST     uint16 = 2
	IFLA_IFNAME        uint16 = 3
	IFLA_MTU           uint16 = 4
	IFLA_LINK          uint16 = 5
	IFLA_QDISC         uint16 = 6
	IFLA_STATS         uint16 = 7
	IFLA_MASTER        uint16 = 10
	IFLA_TXQLEN        uint16 = 13
	IFLA_OPERSTATE     uint16 = 16
	IFLA_LINKMODE      uint16 = 17
	IFLA_LINKINFO      uint16 = 18
	IFLA_IFALIAS       uint16 = 20
	IFLA_STATS64       uint16 = 23
	IFLA_EXT_MASK      uint16 = 29
	IFLA_PROMISCUITY   uint16 = 30
	IFLA_NUM_TX_QUEUES uint16 = 31
	IFLA_NUM_RX_QUEUES uint16 = 32
	IFLA_CARRIER             uint16 = 33
	IFLA_CARRIER_CHANGES     uint16 = 35
	IFLA_MIN_MTU             uint16 = 50
	IFLA_MAX_MTU             uint16 = 51
	IFLA_PROP_LIST           uint16 = 52
	IFLA_ALT_IFNAME          uint16 = 53
	IFLA_PERM_ADDRESS        uint16 = 54
	IFLA_PARENT_DEV_NAME     uint16 = 56
	IFLA_PARENT_DEV_BUS_NAME uint16 = 57
)

// Nested under IFLA_LINKINFO.
const (
	IFLA_INFO_KIND       uint16 = 1
	IFLA_INFO_DATA       uint16 = 2
	IFLA_INFO_SLAVE_KIND uint16 = 4
	IFLA_INFO_SLAVE_DATA uint16 = 5
)

// VLAN info data, nested under IFLA_INFO_DATA for kind "vlan".
const (
	IFLA_VLAN_ID       uint16 = 1
	IFLA_VLAN_FLAGS    uint16 = 2
	IFLA_VLAN_PROTOCOL uint16 = 5
)

// Bond info data, nested under IFLA_INFO_DATA for kind "bond".
const (
	IFLA_BOND_MODE             uint16 = 1
	IFLA_BOND_MIIMON           uint16 = 3
	IFLA_BOND_UPDELAY          uint16 = 4
	IFLA_BOND_DOWNDELAY        uint16 = 5
	IFLA_BOND_PRIMARY          uint16 = 11
	IFLA_BOND_XMIT_HASH_POLICY uint16 = 14
	IFLA_BOND_AD_LACP_RATE     uint16 = 21
	IFLA_BOND_TLB_DYNAMIC_LB   uint16 = 27
	IFLA_BOND_LACP_ACTIVE      uint16 = 29
)

// Bridge info data, nested under IFLA_INFO_DATA for kind "bridge".
const (
	IFLA_BR_FORWARD_DELAY uint16 = 1
	IFLA_BR_HELLO_TIME    uint16 = 2
	IFLA_BR_MAX_AGE       uint16 = 3
	IFLA_BR_STP_STATE     uint16 = 5
	IFLA_BR_PRIORITY      uint16 = 6
)

// Address attributes, linux/if_addr.h.
const (
	IFA_UNSPEC    uint16 = 0
	IFA_ADDRESS   uint16 = 1
	IFA_LOCAL     uint16 = 2
	IFA_LABEL     uint16 = 3
	IFA_BROADCAST uint16 = 4
	IFA_ANYCAST   uint16 = 5
	IFA_CACHEINFO uint16 = 6
	IFA_FLAGS     uint16 = 8
	IFA_PROTO     uint16 = 11
)

// Route attributes, linux/rtnetlink.h.
const (
	RTA_UNSPEC    uint16 = 0
	RTA_DST       uint16 = 1
	RTA_SRC       uint16 = 2
	RTA_IIF       uint16 = 3
	RTA_OIF       uint16 = 4
	RTA_GATEWAY   uint16 = 5
	RTA_PRIORITY  uint16 = 6
	RTA_PREFSRC   uint16 = 7
	RTA_METRICS   uint16 = 8
	RTA_FLOW      uint16 = 11
	RTA_CACHEINFO uint16 = 12
	RTA_TABLE     uint16 = 15
	RTA_MARK      uint16 = 16
	RTA_PREF      uint16 = 20
	RTA_EXPIRES   uint16 = 23
	RTA_NH_ID     uint16 = 30
)

// Rule attributes, linux/fib_rules.h. The header shares layout with
// rtmsg, so the low attribute values mirror RTA_*.
const (
	FRA_DST                uint16 = 1
	FRA_SRC                uint16 = 2
	FRA_IIFNAME            uint16 = 3
	FRA_GOTO               uint16 = 4
	FRA_PRIORITY           uint16 = 6
	FRA_FWMARK             uint16 = 10
	FRA_FLOW               uint16 = 11
	FRA_TUN_ID             uint16 = 12
	FRA_SUPPRESS_IFGROUP   uint16 = 13
	FRA_SUPPRESS_PREFIXLEN uint16 = 14
	FRA_TABLE              uint16 = 15
	FRA_FWMASK             uint16 = 16
	FRA_OIFNAME            uint16 = 17
	FRA_L3MDEV             uint16 = 19
	FRA_PROTOCOL           uint16 = 21
	FRA_IP_PROTO           uint16 = 22
	FRA_SPORT_RANGE        uint16 = 23
	FRA_DPORT_RANGE        uint16 = 24
)

// Routing tables.
const (
	TableUnspec  uint8 = 0
	TableDefault uint8 = 253
	TableMain    uint8 = 254
	TableLocal   uint8 = 255
)

// Route origin protocols.
const (
	ProtoUnspec   uint8 = 0
	ProtoRedirect uint8 = 1
	ProtoKernel   uint8 = 2
	ProtoBoot     uint8 = 3
	ProtoStatic   uint8 = 4
	ProtoDHCP     uint8 = 16
)

// Route scopes.
const (
	ScopeUniverse uint8 = 0
	ScopeSite     uint8 = 200
	ScopeLink     uint8 = 253
	ScopeHost     uint8 = 254
	ScopeNowhere  uint8 = 255
)

// Route types.
const (
	TypeUnspec      uint8 = 0
	TypeUnicast     uint8 = 1
	TypeLocal       uint8 = 2
	TypeBroadcast   uint8 = 3
	TypeMulticast   uint8 = 5
	TypeBlackhole   uint8 = 6
	TypeUnreachable uint8 = 7
	TypeProhibit    uint8 = 8
)

// rtm_flags bits of interest.
const (
	rtmFlagCloned uint32 = 0x200 // RTM_F_CLONED
)

// Dump ext-mask bits: ask for the VF block the way ip(8) does, minus
// its per-VF stats, which nothing here decodes.
const (
	rtextFilterVF        uint32 = 1 << 0
	rtextFilterSkipStats uint32 = 1 << 3
)

// Interface flags, linux/if.h. Only the ones this package touches.
const (
	IFF_UP        uint32 = 1 << 0
	IFF_BROADCAST uint32 = 1 << 1
	IFF_LOOPBACK  uint32 = 1 << 3
	IFF_RUNNING   uint32 = 1 << 6
	IFF_PROMISC   uint32 = 1 << 8
	IFF_MULTICAST uint32 = 1 << 12
	IFF_LOWER_UP  uint32 = 1 << 16
)

// Operational states, RFC 2863 via linux/if.h.
const (
	OperUnknown        uint8 = 0
	OperNotPresent     uint8 = 1
	OperDown           uint8 = 2
	OperLowerLayerDown uint8 = 3
	OperTesting        uint8 = 4
	OperDormant        uint8 = 5
	OperUp             uint8 = 6
)

// lifetimeForever is the IFA_CACHEINFO sentinel for addresses that
// never expire.
const lifetimeForever uint32 = 0xFFFFFFFF

// Fixed header sizes.
const (
	ifInfomsgLen = 16
	ifAddrmsgLen = 8
	rtMsgLen     = 12
)
