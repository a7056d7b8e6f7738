package cdr

import "github.com/eprosima/fastcdr-go/internal/cdrtrace"

// MemberFunc is invoked once per member found while deserializing a type.
// id is MemberIDInvalid for the PLAIN_CDR/PLAIN_CDR2 algorithms, where
// members carry no identity on the wire and are expected in declaration
// order.
type MemberFunc func(c *Cdr, id MemberID) error

const (
	pidExtended     uint16 = 0x3F01
	pidSentinel     uint16 = 0x3F02
	mustUnderstandV1 uint16 = 0x4000
	shortIDMask      uint16 = 0x3FFF
	shortIDMax       uint32 = 0x3F00 // largest id a short PL_CDR header carries

	mustUnderstandLongV1 uint32 = 1 << 31

	emheaderMustUnderstand uint32 = 1 << 31
	emheaderLengthCodeMask uint32 = 0x7
	emheaderLengthCodeShift        = 28
	emheaderIDMask          uint32 = 0x0FFFFFFF
)

func emheaderWord(mustUnderstand bool, lengthCode uint32, id uint32) uint32 {
	w := (lengthCode & emheaderLengthCodeMask) << emheaderLengthCodeShift
	w |= id & emheaderIDMask
	if mustUnderstand {
		w |= emheaderMustUnderstand
	}
	return w
}

func emheaderParse(w uint32) (mustUnderstand bool, lengthCode uint32, id uint32) {
	mustUnderstand = w&emheaderMustUnderstand != 0
	lengthCode = (w >> emheaderLengthCodeShift) & emheaderLengthCodeMask
	id = w & emheaderIDMask
	return
}

// lengthCodeDirectWidth returns the fixed payload width for length codes 0
// through 3, and 0 for any code that instead uses a NEXTINT (4) or an
// element-counted payload (5, 6, 7).
func lengthCodeDirectWidth(lc uint32) int {
	switch lc {
	case 0:
		return 1
	case 1:
		return 2
	case 2:
		return 4
	case 3:
		return 8
	default:
		return 0
	}
}

// BeginSerializeType opens a type-level framing scope, switching the
// cursor's active encoding algorithm to encoding for the scope's duration
// and, for DELIMIT_CDR2/PL_CDR2, reserving the 4-byte DHEADER that will be
// backpatched by EndSerializeType. Per the position-independence property
// recorded in SPEC_FULL.md §4.6, origin re-anchors to the first byte of the
// scope's body, so every member offset within it is relative to the scope,
// not the outer stream.
func (c *Cdr) BeginSerializeType(encoding Encoding) (State, error) {
	saved := c.snapshot()
	c.encoding = encoding
	if encoding.usesDHeader() {
		if err := c.alignForWrite(4); err != nil {
			c.restore(saved)
			return State{}, err
		}
		c.dheaderOffset = c.offset
		if err := c.writeRaw(4, []byte{0, 0, 0, 0}); err != nil {
			c.restore(saved)
			return State{}, err
		}
		c.dheaderOpen = true
		c.origin = c.offset
		c.lastDataSize = 0
	}
	return saved, nil
}

// EndSerializeType closes a type-level framing scope opened by
// BeginSerializeType, backpatching the DHEADER (DELIMIT_CDR2/PL_CDR2) or
// writing the PID_SENTINEL terminator (PL_CDR v1), then restoring the
// cursor's encoding algorithm to what it was before Begin.
func (c *Cdr) EndSerializeType(saved State) error {
	switch {
	case c.encoding.usesDHeader() && c.dheaderOpen:
		bodyLen := uint32(c.offset - c.dheaderOffset - 4)
		if err := c.patchUint32At(c.dheaderOffset, bodyLen); err != nil {
			return err
		}
		c.dheaderOpen = false
	case c.encoding == PlCdr:
		if err := c.alignForWrite(4); err != nil {
			return err
		}
		if err := SerializeUint16(c, pidSentinel); err != nil {
			return err
		}
		if err := SerializeUint16(c, 0); err != nil {
			return err
		}
	}
	c.encoding = saved.encoding
	c.origin = saved.origin
	c.dheaderOffset = saved.dheaderOffset
	c.dheaderOpen = saved.dheaderWasOpen
	return nil
}

// BeginSerializeMember opens a member-framing scope for id under the
// cursor's active PL_CDR/PL_CDR2 encoding, writing a provisional header
// that EndSerializeMember either confirms or promotes once the member's
// encoded body length is known. Under any other encoding it writes nothing.
// required sets the wire must-understand bit; it is not derivable from
// presence alone (§8 scenarios 2 and 3 both show a present, optional
// member with must-understand clear), so it is an explicit parameter.
// There is no presence parameter: an absent member is simply not framed.
func (c *Cdr) BeginSerializeMember(id MemberID, required bool, selection HeaderSelection) (State, error) {
	saved := c.snapshot()
	saved.memberID = id
	saved.required = required
	if selection == HeaderSelectionDefault {
		selection = c.headerSelection
	}
	saved.headerSelection = selection
	c.trace("cdr: begin member", cdrtrace.KeyMemberID, uint32(id), cdrtrace.KeyEncoding, c.encoding)

	if !c.encoding.isParameterList() {
		return saved, nil
	}
	switch c.variant {
	case XCdrV2:
		return c.beginMemberV2(saved, uint32(id), required, selection)
	default:
		return c.beginMemberV1(saved, uint32(id), required, selection)
	}
}

func (c *Cdr) beginMemberV1(saved State, id uint32, required bool, selection HeaderSelection) (State, error) {
	wantLong := selection.wantsLong() || id > shortIDMax
	if selection == ShortHeader && id > shortIDMax {
		return State{}, newInconsistentSelection("cdr: member id %d does not fit the forced short PL_CDR header", id)
	}
	if err := c.alignForWrite(4); err != nil {
		return State{}, err
	}
	saved.headerOffset = c.offset
	if wantLong {
		if err := SerializeUint16(c, pidExtended); err != nil {
			return State{}, err
		}
		if err := SerializeUint16(c, 8); err != nil {
			return State{}, err
		}
		realID := uint32(id)
		if required {
			realID |= mustUnderstandLongV1
		}
		if err := SerializeUint32(c, realID); err != nil {
			return State{}, err
		}
		saved.headerForm = headerFormLongV1
		if err := SerializeUint32(c, 0); err != nil {
			return State{}, err
		}
	} else {
		flagged := uint16(id)
		if required {
			flagged |= mustUnderstandV1
		}
		if err := SerializeUint16(c, flagged); err != nil {
			return State{}, err
		}
		saved.headerForm = headerFormShortV1
		if err := SerializeUint16(c, 0); err != nil {
			return State{}, err
		}
	}
	c.origin = c.offset
	return saved, nil
}

func (c *Cdr) beginMemberV2(saved State, id uint32, required bool, selection HeaderSelection) (State, error) {
	saved.headerOffset = c.offset
	if selection.wantsLong() {
		if err := SerializeUint32(c, emheaderWord(required, 4, id)); err != nil {
			return State{}, err
		}
		saved.headerForm = headerFormV2NextInt
		if err := SerializeUint32(c, 0); err != nil {
			return State{}, err
		}
		c.origin = c.offset
		return saved, nil
	}
	if err := SerializeUint32(c, emheaderWord(required, 0, id)); err != nil {
		return State{}, err
	}
	saved.headerForm = headerFormV2Provisional
	c.origin = c.offset
	return saved, nil
}

// EndSerializeMember closes a member-framing scope opened by
// BeginSerializeMember, computing the member body's length from the
// cursor's advance since the header and backpatching or, for an
// auto-selected short header that turned out not to fit, promoting the
// header in place via Buffer.shiftRight.
func (c *Cdr) EndSerializeMember(saved State) error {
	bodyStart := saved.headerOffset
	switch saved.headerForm {
	case headerFormShortV1:
		bodyStart += 4
	case headerFormLongV1:
		bodyStart += 12
	case headerFormV2Provisional:
		bodyStart += 4
	case headerFormV2NextInt:
		bodyStart += 8
	}
	bodyLen := c.offset - bodyStart

	err := c.endSerializeMemberBody(saved, bodyLen)
	c.origin = saved.origin
	return err
}

func (c *Cdr) endSerializeMemberBody(saved State, bodyLen int) error {
	switch saved.headerForm {
	case headerFormShortV1:
		if bodyLen <= 0xFFFF {
			return c.patchUint16At(saved.headerOffset+2, uint16(bodyLen))
		}
		if saved.headerSelection == ShortHeader {
			return newInconsistentSelection("cdr: member body of %d bytes does not fit the forced short PL_CDR header", bodyLen)
		}
		return c.promoteMemberV1(saved, bodyLen)
	case headerFormLongV1:
		return c.patchUint32At(saved.headerOffset+8, uint32(bodyLen))
	case headerFormV2Provisional:
		if bodyLen == 1 {
			return nil
		}
		if saved.headerSelection == ShortHeader {
			return newInconsistentSelection("cdr: member body of %d bytes does not fit the forced short EMHEADER form", bodyLen)
		}
		return c.promoteMemberV2(saved, bodyLen)
	case headerFormV2NextInt:
		return c.patchUint32At(saved.headerOffset+4, uint32(bodyLen))
	}
	return nil
}

// promoteMemberV1 rewrites a provisional 4-byte short PL_CDR header into
// the 12-byte long form in place, shifting the already-written body right
// by 8 bytes.
func (c *Cdr) promoteMemberV1(saved State, bodyLen int) error {
	c.countPromotion()
	c.trace("cdr: promoting member header to long form", cdrtrace.KeyMemberID, uint32(saved.memberID), cdrtrace.KeyHeaderLen, 12)
	insertAt := saved.headerOffset + 4
	if err := c.buf.shiftRight(insertAt, 8); err != nil {
		return err
	}
	c.offset += 8
	id, err := c.readUint16At(saved.headerOffset)
	if err != nil {
		return err
	}
	required := id&mustUnderstandV1 != 0
	realID := uint32(id &^ mustUnderstandV1)
	if required {
		realID |= mustUnderstandLongV1
	}
	if err := c.patchUint16At(saved.headerOffset, pidExtended); err != nil {
		return err
	}
	if err := c.patchUint16At(saved.headerOffset+2, 8); err != nil {
		return err
	}
	if err := c.patchUint32At(saved.headerOffset+4, realID); err != nil {
		return err
	}
	return c.patchUint32At(saved.headerOffset+8, uint32(bodyLen))
}

// promoteMemberV2 rewrites a provisional direct-form EMHEADER (length code
// 0) into the NEXTINT form (length code 4) in place, shifting the
// already-written body right by 4 bytes to open the NEXTINT slot.
func (c *Cdr) promoteMemberV2(saved State, bodyLen int) error {
	c.countPromotion()
	c.trace("cdr: promoting EMHEADER to NEXTINT form", cdrtrace.KeyMemberID, uint32(saved.memberID), cdrtrace.KeyHeaderLen, 8)
	insertAt := saved.headerOffset + 4
	if err := c.buf.shiftRight(insertAt, 4); err != nil {
		return err
	}
	c.offset += 4
	word, err := c.readUint32At(saved.headerOffset)
	if err != nil {
		return err
	}
	mustUnderstand, _, id := emheaderParse(word)
	if err := c.patchUint32At(saved.headerOffset, emheaderWord(mustUnderstand, 4, id)); err != nil {
		return err
	}
	return c.patchUint32At(insertAt, uint32(bodyLen))
}

// DeserializeType drives the read-side member-framing state machine for
// encoding: PLAIN_CDR/PLAIN_CDR2 invoke fn exactly once with
// MemberIDInvalid; DELIMIT_CDR2 bounds a run of positionally-numbered
// members by its DHEADER; PL_CDR/PL_CDR2 parse each member's own header,
// pass its real id to fn, and skip any bytes fn left unconsumed.
func (c *Cdr) DeserializeType(encoding Encoding, fn MemberFunc) error {
	saved := c.snapshot()
	prevEncoding := c.encoding
	c.encoding = encoding
	defer func() { c.encoding = prevEncoding }()

	switch encoding {
	case PlainCdr:
		if err := fn(c, MemberIDInvalid); err != nil {
			c.restore(saved)
			return err
		}
		return nil
	case PlainCdr2:
		if err := fn(c, MemberIDInvalid); err != nil {
			c.restore(saved)
			return err
		}
		return nil
	case DelimitCdr2:
		return c.deserializeDelimited(fn)
	case PlCdr:
		return c.deserializeParameterListV1(fn)
	case PlCdr2:
		return c.deserializeParameterListV2(fn)
	default:
		return newBadParam("cdr: unknown encoding algorithm %d", encoding)
	}
}

func (c *Cdr) deserializeDelimited(fn MemberFunc) error {
	saved := c.snapshot()
	if err := c.alignForRead(4); err != nil {
		c.restore(saved)
		return err
	}
	length, err := DeserializeUint32(c)
	if err != nil {
		c.restore(saved)
		return err
	}
	boundEnd := c.offset + int(length)
	prevOrigin := c.origin
	c.origin = c.offset
	var id MemberID
	for c.offset < boundEnd {
		before := c.offset
		if err := fn(c, MemberID(id)); err != nil {
			c.origin = prevOrigin
			c.restore(saved)
			return err
		}
		if c.offset <= before {
			c.origin = prevOrigin
			return newBadParam("cdr: DELIMIT_CDR2 member consumed no bytes, refusing to loop forever")
		}
		id++
	}
	c.origin = prevOrigin
	if c.offset != boundEnd {
		return newBadParam("cdr: DELIMIT_CDR2 members overran the declared DHEADER bound")
	}
	return nil
}

func (c *Cdr) deserializeParameterListV1(fn MemberFunc) error {
	for {
		if err := c.alignForRead(4); err != nil {
			return err
		}
		rawID, err := DeserializeUint16(c)
		if err != nil {
			return err
		}
		if rawID == pidSentinel {
			if _, err := DeserializeUint16(c); err != nil {
				return err
			}
			return nil
		}
		if rawID == pidExtended {
			if _, err := DeserializeUint16(c); err != nil { // nested length, always 8
				return err
			}
			rawRealID, err := DeserializeUint32(c)
			if err != nil {
				return err
			}
			realID := rawRealID &^ mustUnderstandLongV1
			bodyLen, err := DeserializeUint32(c)
			if err != nil {
				return err
			}
			bodyStart := c.offset
			prevOrigin := c.origin
			c.origin = bodyStart
			if err := fn(c, MemberID(realID)); err != nil {
				c.origin = prevOrigin
				return err
			}
			c.origin = prevOrigin
			if err := c.Jump(bodyStart + int(bodyLen)); err != nil {
				return err
			}
			continue
		}
		id := rawID &^ mustUnderstandV1
		bodyLen, err := DeserializeUint16(c)
		if err != nil {
			return err
		}
		bodyStart := c.offset
		prevOrigin := c.origin
		c.origin = bodyStart
		if err := fn(c, MemberID(id)); err != nil {
			c.origin = prevOrigin
			return err
		}
		c.origin = prevOrigin
		if err := c.Jump(bodyStart + int(bodyLen)); err != nil {
			return err
		}
	}
}

func (c *Cdr) deserializeParameterListV2(fn MemberFunc) error {
	saved := c.snapshot()
	if err := c.alignForRead(4); err != nil {
		c.restore(saved)
		return err
	}
	length, err := DeserializeUint32(c)
	if err != nil {
		c.restore(saved)
		return err
	}
	boundEnd := c.offset + int(length)
	prevOrigin := c.origin
	c.origin = c.offset
	typeOrigin := c.origin
	for c.offset < boundEnd {
		word, err := DeserializeUint32(c)
		if err != nil {
			c.origin = prevOrigin
			return err
		}
		_, lc, id := emheaderParse(word)
		var bodyLen int
		var nextInt uint32
		switch lc {
		case 0, 1, 2, 3:
			bodyLen = lengthCodeDirectWidth(lc)
		case 4:
			nextInt, err = DeserializeUint32(c)
			if err != nil {
				c.origin = prevOrigin
				return err
			}
			bodyLen = int(nextInt)
		case 5:
			bodyLen = 4
		case 6:
			nextInt, err = DeserializeUint32(c)
			if err != nil {
				c.origin = prevOrigin
				return err
			}
			bodyLen = int(nextInt) * 4
		case 7:
			nextInt, err = DeserializeUint32(c)
			if err != nil {
				c.origin = prevOrigin
				return err
			}
			bodyLen = int(nextInt) * 8
		}
		// for lc 5 the NEXTINT slot never existed: its 4 bytes are the
		// payload itself, so bodyStart is already positioned correctly.
		bodyStart := c.offset
		c.origin = bodyStart
		if err := fn(c, MemberID(id)); err != nil {
			c.origin = prevOrigin
			return err
		}
		c.origin = typeOrigin
		if err := c.Jump(bodyStart + bodyLen); err != nil {
			c.origin = prevOrigin
			return err
		}
	}
	c.origin = prevOrigin
	if c.offset != boundEnd {
		return newBadParam("cdr: PL_CDR2 members overran the declared DHEADER bound")
	}
	return nil
}
