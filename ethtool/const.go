package ethtool

// nlctrl GETFAMILY handshake.
const (
	ctrlCmdGetFamily   uint8  = 3
	ctrlAttrFamilyID   uint16 = 1
	ctrlAttrFamilyName uint16 = 2
)

// Ethtool genetlink commands.
const (
	msgStrsetGet    uint8 = 1
	msgLinkinfoGet  uint8 = 2
	msgLinkmodesGet uint8 = 4
	msgLinkstateGet uint8 = 6
	msgFeaturesGet  uint8 = 11
	msgFECGet       uint8 = 17
	msgFECSet       uint8 = 18
)

// Common request header, nested under every command.
const (
	attrHeader        uint16 = 1
	attrHeaderDevName uint16 = 2
	attrHeaderFlags   uint16 = 3
)

// LINKMODES_GET reply attributes.
const (
	attrLinkmodesAutoneg uint16 = 2
	attrLinkmodesOurs    uint16 = 3
	attrLinkmodesSpeed   uint16 = 5
	attrLinkmodesDuplex  uint16 = 6
)

// Bitset attributes, both the compact and the verbose form.
const (
	attrBitsetSize  uint16 = 2
	attrBitsetBits  uint16 = 3
	attrBitsetValue uint16 = 4
	attrBitsetMask  uint16 = 5

	attrBitsetBitsBit uint16 = 1

	attrBitsetBitIndex uint16 = 1
	attrBitsetBitValue uint16 = 3
)

// LINKINFO_GET reply attributes.
const (
	attrLinkinfoPort        uint16 = 2
	attrLinkinfoPhyaddr     uint16 = 3
	attrLinkinfoTransceiver uint16 = 6
)

// LINKSTATE_GET reply attributes.
const attrLinkstateLink uint16 = 2

// FEATURES_GET reply attributes.
const (
	attrFeaturesHW       uint16 = 2
	attrFeaturesActive   uint16 = 4
	attrFeaturesNochange uint16 = 5
)

// STRSET_GET nesting.
const (
	attrStrsetStringsets    uint16 = 2
	attrStringsetsStringset uint16 = 1
	attrStringsetID         uint16 = 1
	attrStringsetStrings    uint16 = 3
	attrStringsString       uint16 = 1
	attrStringIndex         uint16 = 1
	attrStringValue         uint16 = 2
)

// FEC_GET / FEC_SET attributes.
const (
	attrFECModes  uint16 = 2
	attrFECAuto   uint16 = 3
	attrFECActive uint16 = 4
)

// Kernel string set ids.
const (
	stringSetFeatures  uint32 = 4
	stringSetLinkModes uint32 = 9
)

// Port types, ethtool.h PORT_*.
const (
	PortTP    uint8 = 0x00
	PortAUI   uint8 = 0x01
	PortMII   uint8 = 0x02
	PortFibre uint8 = 0x03
	PortBNC   uint8 = 0x04
	PortDA    uint8 = 0x05
	PortNone  uint8 = 0xEF
	PortOther uint8 = 0xFF
)

var portNames = map[uint8]string{
	PortTP:    "Twisted Pair",
	PortAUI:   "AUI",
	PortMII:   "MII",
	PortFibre: "Fibre",
	PortBNC:   "BNC",
	PortDA:    "Direct Attach Copper",
	PortNone:  "None",
	PortOther: "Other",
}

// Duplex values.
const (
	duplexHalf    uint8 = 0
	duplexFull    uint8 = 1
	duplexUnknown uint8 = 0xFF
)

const transceiverExternal uint8 = 1

// speedUnknown is what drivers report for links with no negotiated
// rate.
const speedUnknown uint32 = 0xFFFFFFFF

// FEC link mode bit indices, ETHTOOL_LINK_MODE_FEC_*_BIT. The ACTIVE
// attribute carries one of these, not a bitmask.
const (
	fecBitOff   uint32 = 49
	fecBitRS    uint32 = 50
	fecBitBaseR uint32 = 51
	fecBitLLRS  uint32 = 74
)
