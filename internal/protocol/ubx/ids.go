package ubx

// NavID NAV 类消息子 ID
type NavID uint8

const (
	NavPOSECEF   NavID = 0x01
	NavPOSLLH    NavID = 0x02
	NavSTATUS    NavID = 0x03
	NavDOP       NavID = 0x04
	NavATT       NavID = 0x05
	NavSOL       NavID = 0x06
	NavPVT       NavID = 0x07
	NavODO       NavID = 0x09
	NavRESETODO  NavID = 0x10
	NavVELECEF   NavID = 0x11
	NavVELNED    NavID = 0x12
	NavHPPOSECEF NavID = 0x13
	NavHPPOSLLH  NavID = 0x14
	NavTIMEGPS   NavID = 0x20
	NavTIMEUTC   NavID = 0x21
	NavCLOCK     NavID = 0x22
	NavTIMEGLO   NavID = 0x23
	NavTIMEBDS   NavID = 0x24
	NavTIMEGAL   NavID = 0x25
	NavTIMEELS   NavID = 0x26
	NavNMI       NavID = 0x28
	NavSVINFO    NavID = 0x30
	NavDGPS      NavID = 0x31
	NavSBAS      NavID = 0x32
	NavORB       NavID = 0x34
	NavSAT       NavID = 0x35
	NavGEOFENCE  NavID = 0x39
	NavSVIN      NavID = 0x3b
	NavRELPOSNED NavID = 0x3c
	NavSLAS      NavID = 0x42
	NavAOPSTATUS NavID = 0x60
	NavEOE       NavID = 0x61
	NavUnknown   NavID = 0x62
)

func parseNavID(b uint8) NavID {
	switch id := NavID(b); id {
	case NavPOSECEF, NavPOSLLH, NavSTATUS, NavDOP, NavATT, NavSOL, NavPVT, NavODO, NavRESETODO,
		NavVELECEF, NavVELNED, NavHPPOSECEF, NavHPPOSLLH, NavTIMEGPS, NavTIMEUTC, NavCLOCK,
		NavTIMEGLO, NavTIMEBDS, NavTIMEGAL, NavTIMEELS, NavNMI, NavSVINFO, NavDGPS, NavSBAS, NavORB,
		NavSAT, NavGEOFENCE, NavSVIN, NavRELPOSNED, NavSLAS, NavAOPSTATUS, NavEOE:
		return id
	}
	return NavUnknown
}

// Name 子 ID 名称，未识别时为 "Unknown"
func (id NavID) Name() string {
	switch id {
	case NavPOSECEF:
		return "POSECEF"
	case NavPOSLLH:
		return "POSLLH"
	case NavSTATUS:
		return "STATUS"
	case NavDOP:
		return "DOP"
	case NavATT:
		return "ATT"
	case NavSOL:
		return "SOL"
	case NavPVT:
		return "PVT"
	case NavODO:
		return "ODO"
	case NavRESETODO:
		return "RESETODO"
	case NavVELECEF:
		return "VELECEF"
	case NavVELNED:
		return "VELNED"
	case NavHPPOSECEF:
		return "HPPOSECEF"
	case NavHPPOSLLH:
		return "HPPOSLLH"
	case NavTIMEGPS:
		return "TIMEGPS"
	case NavTIMEUTC:
		return "TIMEUTC"
	case NavCLOCK:
		return "CLOCK"
	case NavTIMEGLO:
		return "TIMEGLO"
	case NavTIMEBDS:
		return "TIMEBDS"
	case NavTIMEGAL:
		return "TIMEGAL"
	case NavTIMEELS:
		return "TIMEELS"
	case NavNMI:
		return "NMI"
	case NavSVINFO:
		return "SVINFO"
	case NavDGPS:
		return "DGPS"
	case NavSBAS:
		return "SBAS"
	case NavORB:
		return "ORB"
	case NavSAT:
		return "SAT"
	case NavGEOFENCE:
		return "GEOFENCE"
	case NavSVIN:
		return "SVIN"
	case NavRELPOSNED:
		return "RELPOSNED"
	case NavSLAS:
		return "SLAS"
	case NavAOPSTATUS:
		return "AOPSTATUS"
	case NavEOE:
		return "EOE"
	}
	return "Unknown"
}

func (id NavID) Class() Class   { return ClassNAV }
func (id NavID) Byte() uint8    { return uint8(id) }
func (id NavID) String() string { return ClassNAV.String() + "-" + id.Name() }
func (id NavID) isID()          {}

// RxmID RXM 类消息子 ID
type RxmID uint8

const (
	RxmSFRBX   RxmID = 0x13
	RxmMEASX   RxmID = 0x14
	RxmRAWX    RxmID = 0x15
	RxmSVSI    RxmID = 0x20
	RxmRTCM    RxmID = 0x32
	RxmPMREQ   RxmID = 0x41
	RxmRLM     RxmID = 0x59
	RxmIMES    RxmID = 0x61
	RxmUnknown RxmID = 0x62
)

func parseRxmID(b uint8) RxmID {
	switch id := RxmID(b); id {
	case RxmSFRBX, RxmMEASX, RxmRAWX, RxmSVSI, RxmRTCM, RxmPMREQ, RxmRLM, RxmIMES:
		return id
	}
	return RxmUnknown
}

func (id RxmID) Name() string {
	switch id {
	case RxmSFRBX:
		return "SFRBX"
	case RxmMEASX:
		return "MEASX"
	case RxmRAWX:
		return "RAWX"
	case RxmSVSI:
		return "SVSI"
	case RxmRTCM:
		return "RTCM"
	case RxmPMREQ:
		return "PMREQ"
	case RxmRLM:
		return "RLM"
	case RxmIMES:
		return "IMES"
	}
	return "Unknown"
}

func (id RxmID) Class() Class   { return ClassRXM }
func (id RxmID) Byte() uint8    { return uint8(id) }
func (id RxmID) String() string { return ClassRXM.String() + "-" + id.Name() }
func (id RxmID) isID()          {}

// InfID INF 类消息子 ID
type InfID uint8

const (
	InfERROR   InfID = 0x00
	InfWARNING InfID = 0x01
	InfNOTICE  InfID = 0x02
	InfTEST    InfID = 0x03
	InfDEBUG   InfID = 0x04
	InfUnknown InfID = 0x05
)

func parseInfID(b uint8) InfID {
	switch id := InfID(b); id {
	case InfERROR, InfWARNING, InfNOTICE, InfTEST, InfDEBUG:
		return id
	}
	return InfUnknown
}

func (id InfID) Name() string {
	switch id {
	case InfERROR:
		return "ERROR"
	case InfWARNING:
		return "WARNING"
	case InfNOTICE:
		return "NOTICE"
	case InfTEST:
		return "TEST"
	case InfDEBUG:
		return "DEBUG"
	}
	return "Unknown"
}

func (id InfID) Class() Class   { return ClassINF }
func (id InfID) Byte() uint8    { return uint8(id) }
func (id InfID) String() string { return ClassINF.String() + "-" + id.Name() }
func (id InfID) isID()          {}

// AckID ACK 类消息子 ID
type AckID uint8

const (
	AckNAK     AckID = 0x00
	AckACK     AckID = 0x01
	AckUnknown AckID = 0x02
)

func parseAckID(b uint8) AckID {
	switch id := AckID(b); id {
	case AckNAK, AckACK:
		return id
	}
	return AckUnknown
}

func (id AckID) Name() string {
	switch id {
	case AckNAK:
		return "NAK"
	case AckACK:
		return "ACK"
	}
	return "Unknown"
}

func (id AckID) Class() Class   { return ClassACK }
func (id AckID) Byte() uint8    { return uint8(id) }
func (id AckID) String() string { return ClassACK.String() + "-" + id.Name() }
func (id AckID) isID()          {}

// CfgID CFG 类消息子 ID
type CfgID uint8

const (
	CfgPRT       CfgID = 0x00
	CfgMSG       CfgID = 0x01
	CfgINF       CfgID = 0x02
	CfgRST       CfgID = 0x04
	CfgDAT       CfgID = 0x06
	CfgRATE      CfgID = 0x08
	CfgCFG       CfgID = 0x09
	CfgRXM       CfgID = 0x11
	CfgANT       CfgID = 0x13
	CfgSBAS      CfgID = 0x16
	CfgNMEA      CfgID = 0x17
	CfgUSB       CfgID = 0x1b
	CfgODO       CfgID = 0x1e
	CfgNAVX5     CfgID = 0x23
	CfgNAV5      CfgID = 0x24
	CfgTP5       CfgID = 0x31
	CfgRINV      CfgID = 0x34
	CfgITFM      CfgID = 0x39
	CfgPM2       CfgID = 0x3b
	CfgTMODE2    CfgID = 0x3d
	CfgGNSS      CfgID = 0x3e
	CfgLOGFILTER CfgID = 0x47
	CfgTXSLOT    CfgID = 0x53
	CfgPWR       CfgID = 0x57
	CfgHNR       CfgID = 0x5c
	CfgESRC      CfgID = 0x60
	CfgDOSC      CfgID = 0x61
	CfgSMGR      CfgID = 0x62
	CfgGEOFENCE  CfgID = 0x69
	CfgDGNSS     CfgID = 0x70
	CfgTMODE3    CfgID = 0x71
	CfgPMS       CfgID = 0x86
	CfgSLAS      CfgID = 0x8d
	CfgBATCH     CfgID = 0x93
	CfgUnknown   CfgID = 0x94
)

func parseCfgID(b uint8) CfgID {
	switch id := CfgID(b); id {
	case CfgPRT, CfgMSG, CfgINF, CfgRST, CfgDAT, CfgRATE, CfgCFG, CfgRXM, CfgANT, CfgSBAS,
		CfgNMEA, CfgUSB, CfgODO, CfgNAVX5, CfgNAV5, CfgTP5, CfgRINV, CfgITFM, CfgPM2, CfgTMODE2,
		CfgGNSS, CfgLOGFILTER, CfgTXSLOT, CfgPWR, CfgHNR, CfgESRC, CfgDOSC, CfgSMGR, CfgGEOFENCE,
		CfgDGNSS, CfgTMODE3, CfgPMS, CfgSLAS, CfgBATCH:
		return id
	}
	return CfgUnknown
}

func (id CfgID) Name() string {
	switch id {
	case CfgPRT:
		return "PRT"
	case CfgMSG:
		return "MSG"
	case CfgINF:
		return "INF"
	case CfgRST:
		return "RST"
	case CfgDAT:
		return "DAT"
	case CfgRATE:
		return "RATE"
	case CfgCFG:
		return "CFG"
	case CfgRXM:
		return "RXM"
	case CfgANT:
		return "ANT"
	case CfgSBAS:
		return "SBAS"
	case CfgNMEA:
		return "NMEA"
	case CfgUSB:
		return "USB"
	case CfgODO:
		return "ODO"
	case CfgNAVX5:
		return "NAVX5"
	case CfgNAV5:
		return "NAV5"
	case CfgTP5:
		return "TP5"
	case CfgRINV:
		return "RINV"
	case CfgITFM:
		return "ITFM"
	case CfgPM2:
		return "PM2"
	case CfgTMODE2:
		return "TMODE2"
	case CfgGNSS:
		return "GNSS"
	case CfgLOGFILTER:
		return "LOGFILTER"
	case CfgTXSLOT:
		return "TXSLOT"
	case CfgPWR:
		return "PWR"
	case CfgHNR:
		return "HNR"
	case CfgESRC:
		return "ESRC"
	case CfgDOSC:
		return "DOSC"
	case CfgSMGR:
		return "SMGR"
	case CfgGEOFENCE:
		return "GEOFENCE"
	case CfgDGNSS:
		return "DGNSS"
	case CfgTMODE3:
		return "TMODE3"
	case CfgPMS:
		return "PMS"
	case CfgSLAS:
		return "SLAS"
	case CfgBATCH:
		return "BATCH"
	}
	return "Unknown"
}

func (id CfgID) Class() Class   { return ClassCFG }
func (id CfgID) Byte() uint8    { return uint8(id) }
func (id CfgID) String() string { return ClassCFG.String() + "-" + id.Name() }
func (id CfgID) isID()          {}

// UpdID UPD 类消息子 ID
type UpdID uint8

const (
	UpdSOS     UpdID = 0x14
	UpdUnknown UpdID = 0x15
)

func parseUpdID(b uint8) UpdID {
	switch id := UpdID(b); id {
	case UpdSOS:
		return id
	}
	return UpdUnknown
}

func (id UpdID) Name() string {
	switch id {
	case UpdSOS:
		return "SOS"
	}
	return "Unknown"
}

func (id UpdID) Class() Class   { return ClassUPD }
func (id UpdID) Byte() uint8    { return uint8(id) }
func (id UpdID) String() string { return ClassUPD.String() + "-" + id.Name() }
func (id UpdID) isID()          {}

// MonID MON 类消息子 ID
type MonID uint8

const (
	MonIO      MonID = 0x02
	MonVER     MonID = 0x04
	MonMSGPP   MonID = 0x06
	MonRXBUF   MonID = 0x07
	MonTXBUF   MonID = 0x08
	MonHW      MonID = 0x09
	MonHW2     MonID = 0x0b
	MonRXR     MonID = 0x21
	MonPATCH   MonID = 0x27
	MonGNSS    MonID = 0x28
	MonSMGR    MonID = 0x2e
	MonBATCH   MonID = 0x32
	MonUnknown MonID = 0x33
)

func parseMonID(b uint8) MonID {
	switch id := MonID(b); id {
	case MonIO, MonVER, MonMSGPP, MonRXBUF, MonTXBUF, MonHW, MonHW2, MonRXR, MonPATCH, MonGNSS,
		MonSMGR, MonBATCH:
		return id
	}
	return MonUnknown
}

func (id MonID) Name() string {
	switch id {
	case MonIO:
		return "IO"
	case MonVER:
		return "VER"
	case MonMSGPP:
		return "MSGPP"
	case MonRXBUF:
		return "RXBUF"
	case MonTXBUF:
		return "TXBUF"
	case MonHW:
		return "HW"
	case MonHW2:
		return "HW2"
	case MonRXR:
		return "RXR"
	case MonPATCH:
		return "PATCH"
	case MonGNSS:
		return "GNSS"
	case MonSMGR:
		return "SMGR"
	case MonBATCH:
		return "BATCH"
	}
	return "Unknown"
}

func (id MonID) Class() Class   { return ClassMON }
func (id MonID) Byte() uint8    { return uint8(id) }
func (id MonID) String() string { return ClassMON.String() + "-" + id.Name() }
func (id MonID) isID()          {}

// AidID AID 类消息子 ID
type AidID uint8

const (
	AidINI     AidID = 0x01
	AidHUI     AidID = 0x02
	AidALM     AidID = 0x30
	AidEPH     AidID = 0x31
	AidAOP     AidID = 0x33
	AidUnknown AidID = 0x34
)

func parseAidID(b uint8) AidID {
	switch id := AidID(b); id {
	case AidINI, AidHUI, AidALM, AidEPH, AidAOP:
		return id
	}
	return AidUnknown
}

func (id AidID) Name() string {
	switch id {
	case AidINI:
		return "INI"
	case AidHUI:
		return "HUI"
	case AidALM:
		return "ALM"
	case AidEPH:
		return "EPH"
	case AidAOP:
		return "AOP"
	}
	return "Unknown"
}

func (id AidID) Class() Class   { return ClassAID }
func (id AidID) Byte() uint8    { return uint8(id) }
func (id AidID) String() string { return ClassAID.String() + "-" + id.Name() }
func (id AidID) isID()          {}

// TimID TIM 类消息子 ID
type TimID uint8

const (
	TimTP      TimID = 0x01
	TimTM2     TimID = 0x03
	TimSVIN    TimID = 0x04
	TimVRFY    TimID = 0x06
	TimDOSC    TimID = 0x11
	TimTOS     TimID = 0x12
	TimSMEAS   TimID = 0x13
	TimVCOCAL  TimID = 0x15
	TimFCHG    TimID = 0x16
	TimHOC     TimID = 0x17
	TimUnknown TimID = 0x18
)

func parseTimID(b uint8) TimID {
	switch id := TimID(b); id {
	case TimTP, TimTM2, TimSVIN, TimVRFY, TimDOSC, TimTOS, TimSMEAS, TimVCOCAL, TimFCHG, TimHOC:
		return id
	}
	return TimUnknown
}

func (id TimID) Name() string {
	switch id {
	case TimTP:
		return "TP"
	case TimTM2:
		return "TM2"
	case TimSVIN:
		return "SVIN"
	case TimVRFY:
		return "VRFY"
	case TimDOSC:
		return "DOSC"
	case TimTOS:
		return "TOS"
	case TimSMEAS:
		return "SMEAS"
	case TimVCOCAL:
		return "VCOCAL"
	case TimFCHG:
		return "FCHG"
	case TimHOC:
		return "HOC"
	}
	return "Unknown"
}

func (id TimID) Class() Class   { return ClassTIM }
func (id TimID) Byte() uint8    { return uint8(id) }
func (id TimID) String() string { return ClassTIM.String() + "-" + id.Name() }
func (id TimID) isID()          {}

// EsfID ESF 类消息子 ID
type EsfID uint8

const (
	EsfMEAS    EsfID = 0x02
	EsfRAW     EsfID = 0x03
	EsfSTATUS  EsfID = 0x10
	EsfINS     EsfID = 0x15
	EsfUnknown EsfID = 0x16
)

func parseEsfID(b uint8) EsfID {
	switch id := EsfID(b); id {
	case EsfMEAS, EsfRAW, EsfSTATUS, EsfINS:
		return id
	}
	return EsfUnknown
}

func (id EsfID) Name() string {
	switch id {
	case EsfMEAS:
		return "MEAS"
	case EsfRAW:
		return "RAW"
	case EsfSTATUS:
		return "STATUS"
	case EsfINS:
		return "INS"
	}
	return "Unknown"
}

func (id EsfID) Class() Class   { return ClassESF }
func (id EsfID) Byte() uint8    { return uint8(id) }
func (id EsfID) String() string { return ClassESF.String() + "-" + id.Name() }
func (id EsfID) isID()          {}

// MgaID MGA 类消息子 ID
type MgaID uint8

const (
	MgaGPS      MgaID = 0x00
	MgaGAL      MgaID = 0x02
	MgaBDS      MgaID = 0x03
	MgaQZSS     MgaID = 0x05
	MgaGLO      MgaID = 0x06
	MgaANO      MgaID = 0x20
	MgaFLASH    MgaID = 0x21
	MgaINI      MgaID = 0x40
	MgaACKDATA0 MgaID = 0x60
	MgaDBD      MgaID = 0x80
	MgaUnknown  MgaID = 0x81
)

func parseMgaID(b uint8) MgaID {
	switch id := MgaID(b); id {
	case MgaGPS, MgaGAL, MgaBDS, MgaQZSS, MgaGLO, MgaANO, MgaFLASH, MgaINI, MgaACKDATA0, MgaDBD:
		return id
	}
	return MgaUnknown
}

func (id MgaID) Name() string {
	switch id {
	case MgaGPS:
		return "GPS"
	case MgaGAL:
		return "GAL"
	case MgaBDS:
		return "BDS"
	case MgaQZSS:
		return "QZSS"
	case MgaGLO:
		return "GLO"
	case MgaANO:
		return "ANO"
	case MgaFLASH:
		return "FLASH"
	case MgaINI:
		return "INI"
	case MgaACKDATA0:
		return "ACKDATA0"
	case MgaDBD:
		return "DBD"
	}
	return "Unknown"
}

func (id MgaID) Class() Class   { return ClassMGA }
func (id MgaID) Byte() uint8    { return uint8(id) }
func (id MgaID) String() string { return ClassMGA.String() + "-" + id.Name() }
func (id MgaID) isID()          {}

// LogID LOG 类消息子 ID
type LogID uint8

const (
	LogERASE            LogID = 0x03
	LogSTRING           LogID = 0x04
	LogCREATE           LogID = 0x07
	LogINFO             LogID = 0x08
	LogRETRIEVE         LogID = 0x09
	LogRETRIEVEPOS      LogID = 0x0b
	LogRETRIEVESTRING   LogID = 0x0d
	LogFINDTIME         LogID = 0x0e
	LogRETRIEVEPOSEXTRA LogID = 0x0f
	LogRETRIEVEBATCH    LogID = 0x10
	LogBATCH            LogID = 0x11
	LogUnknown          LogID = 0x12
)

func parseLogID(b uint8) LogID {
	switch id := LogID(b); id {
	case LogERASE, LogSTRING, LogCREATE, LogINFO, LogRETRIEVE, LogRETRIEVEPOS, LogRETRIEVESTRING,
		LogFINDTIME, LogRETRIEVEPOSEXTRA, LogRETRIEVEBATCH, LogBATCH:
		return id
	}
	return LogUnknown
}

func (id LogID) Name() string {
	switch id {
	case LogERASE:
		return "ERASE"
	case LogSTRING:
		return "STRING"
	case LogCREATE:
		return "CREATE"
	case LogINFO:
		return "INFO"
	case LogRETRIEVE:
		return "RETRIEVE"
	case LogRETRIEVEPOS:
		return "RETRIEVEPOS"
	case LogRETRIEVESTRING:
		return "RETRIEVESTRING"
	case LogFINDTIME:
		return "FINDTIME"
	case LogRETRIEVEPOSEXTRA:
		return "RETRIEVEPOSEXTRA"
	case LogRETRIEVEBATCH:
		return "RETRIEVEBATCH"
	case LogBATCH:
		return "BATCH"
	}
	return "Unknown"
}

func (id LogID) Class() Class   { return ClassLOG }
func (id LogID) Byte() uint8    { return uint8(id) }
func (id LogID) String() string { return ClassLOG.String() + "-" + id.Name() }
func (id LogID) isID()          {}

// SecID SEC 类消息子 ID
type SecID uint8

const (
	SecUNIQID  SecID = 0x03
	SecUnknown SecID = 0x04
)

func parseSecID(b uint8) SecID {
	switch id := SecID(b); id {
	case SecUNIQID:
		return id
	}
	return SecUnknown
}

func (id SecID) Name() string {
	switch id {
	case SecUNIQID:
		return "UNIQID"
	}
	return "Unknown"
}

func (id SecID) Class() Class   { return ClassSEC }
func (id SecID) Byte() uint8    { return uint8(id) }
func (id SecID) String() string { return ClassSEC.String() + "-" + id.Name() }
func (id SecID) isID()          {}

// HnrID HNR 类消息子 ID
type HnrID uint8

const (
	HnrPVT     HnrID = 0x00
	HnrINS     HnrID = 0x02
	HnrUnknown HnrID = 0x03
)

func parseHnrID(b uint8) HnrID {
	switch id := HnrID(b); id {
	case HnrPVT, HnrINS:
		return id
	}
	return HnrUnknown
}

func (id HnrID) Name() string {
	switch id {
	case HnrPVT:
		return "PVT"
	case HnrINS:
		return "INS"
	}
	return "Unknown"
}

func (id HnrID) Class() Class   { return ClassHNR }
func (id HnrID) Byte() uint8    { return uint8(id) }
func (id HnrID) String() string { return ClassHNR.String() + "-" + id.Name() }
func (id HnrID) isID()          {}

// knownIDs 全部具名子 ID，按类别与数值升序排列
var knownIDs = [...]ID{
	NavPOSECEF, NavPOSLLH, NavSTATUS, NavDOP, NavATT, NavSOL, NavPVT, NavODO, NavRESETODO,
	NavVELECEF, NavVELNED, NavHPPOSECEF, NavHPPOSLLH, NavTIMEGPS, NavTIMEUTC, NavCLOCK,
	NavTIMEGLO, NavTIMEBDS, NavTIMEGAL, NavTIMEELS, NavNMI, NavSVINFO, NavDGPS, NavSBAS, NavORB,
	NavSAT, NavGEOFENCE, NavSVIN, NavRELPOSNED, NavSLAS, NavAOPSTATUS, NavEOE,
	RxmSFRBX, RxmMEASX, RxmRAWX, RxmSVSI, RxmRTCM, RxmPMREQ, RxmRLM, RxmIMES,
	InfERROR, InfWARNING, InfNOTICE, InfTEST, InfDEBUG,
	AckNAK, AckACK,
	CfgPRT, CfgMSG, CfgINF, CfgRST, CfgDAT, CfgRATE, CfgCFG, CfgRXM, CfgANT, CfgSBAS, CfgNMEA,
	CfgUSB, CfgODO, CfgNAVX5, CfgNAV5, CfgTP5, CfgRINV, CfgITFM, CfgPM2, CfgTMODE2, CfgGNSS,
	CfgLOGFILTER, CfgTXSLOT, CfgPWR, CfgHNR, CfgESRC, CfgDOSC, CfgSMGR, CfgGEOFENCE, CfgDGNSS,
	CfgTMODE3, CfgPMS, CfgSLAS, CfgBATCH,
	UpdSOS,
	MonIO, MonVER, MonMSGPP, MonRXBUF, MonTXBUF, MonHW, MonHW2, MonRXR, MonPATCH, MonGNSS,
	MonSMGR, MonBATCH,
	AidINI, AidHUI, AidALM, AidEPH, AidAOP,
	TimTP, TimTM2, TimSVIN, TimVRFY, TimDOSC, TimTOS, TimSMEAS, TimVCOCAL, TimFCHG, TimHOC,
	EsfMEAS, EsfRAW, EsfSTATUS, EsfINS,
	MgaGPS, MgaGAL, MgaBDS, MgaQZSS, MgaGLO, MgaANO, MgaFLASH, MgaINI, MgaACKDATA0, MgaDBD,
	LogERASE, LogSTRING, LogCREATE, LogINFO, LogRETRIEVE, LogRETRIEVEPOS, LogRETRIEVESTRING,
	LogFINDTIME, LogRETRIEVEPOSEXTRA, LogRETRIEVEBATCH, LogBATCH,
	SecUNIQID,
	HnrPVT, HnrINS,
}
