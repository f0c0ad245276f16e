package onnx

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// ParseFile parses an ONNX model from file.
func ParseFile(path string) (*ModelProto, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(data)
}

// Parse parses an ONNX model from bytes.
func Parse(data []byte) (*ModelProto, error) {
	d := &decoder{data: data}
	model := &ModelProto{}
	if err := d.readModel(model); err != nil {
		return nil, fmt.Errorf("failed to parse model: %w", err)
	}
	if model.Graph == nil {
		return nil, errors.New("model has no graph")
	}
	return model, nil
}

// decoder implements a minimal protobuf wire format reader.
type decoder struct {
	data []byte
	pos  int
}

// Protobuf wire types.
const (
	wireVarint = 0 // int32, int64, bool, enum
	wire64Bit  = 1 // fixed64, double
	wireBytes  = 2 // string, bytes, embedded messages, packed repeated
	wire32Bit  = 5 // fixed32, float
)

// sub returns a decoder over the next length-delimited field.
func (d *decoder) sub() (*decoder, error) {
	data, err := d.readBytes()
	if err != nil {
		return nil, err
	}
	return &decoder{data: data}, nil
}

//nolint:gocyclo // field-by-field protobuf switch
func (d *decoder) readModel(m *ModelProto) error {
	for d.pos < len(d.data) {
		fieldNum, wireType, err := d.readTag()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}

		switch fieldNum {
		case 1: // ir_version
			m.IRVersion, err = d.readVarint()
		case 2: // producer_name
			m.ProducerName, err = d.readString()
		case 3: // producer_version
			m.ProducerVersion, err = d.readString()
		case 5: // model_version
			m.ModelVersion, err = d.readVarint()
		case 7: // graph
			var sub *decoder
			if sub, err = d.sub(); err == nil {
				m.Graph = &GraphProto{}
				err = sub.readGraph(m.Graph)
			}
		case 8: // opset_import
			var sub *decoder
			if sub, err = d.sub(); err == nil {
				opset := OperatorSetID{}
				if err = sub.readOperatorSetID(&opset); err == nil {
					m.OpsetImport = append(m.OpsetImport, opset)
				}
			}
		default:
			err = d.skipField(wireType)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

//nolint:gocyclo // field-by-field protobuf switch
func (d *decoder) readGraph(m *GraphProto) error {
	for d.pos < len(d.data) {
		fieldNum, wireType, err := d.readTag()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}

		switch fieldNum {
		case 1: // node
			var sub *decoder
			if sub, err = d.sub(); err == nil {
				node := NodeProto{}
				if err = sub.readNode(&node); err == nil {
					m.Nodes = append(m.Nodes, node)
				}
			}
		case 2: // name
			m.Name, err = d.readString()
		case 5: // initializer
			var sub *decoder
			if sub, err = d.sub(); err == nil {
				tensor := TensorProto{}
				if err = sub.readTensor(&tensor); err == nil {
					m.Initializers = append(m.Initializers, tensor)
				}
			}
		case 11: // input
			err = d.readValueInfoInto(&m.Inputs)
		case 12: // output
			err = d.readValueInfoInto(&m.Outputs)
		case 13: // value_info
			err = d.readValueInfoInto(&m.ValueInfos)
		default:
			err = d.skipField(wireType)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) readValueInfoInto(infos *[]ValueInfoProto) error {
	sub, err := d.sub()
	if err != nil {
		return err
	}
	vi := ValueInfoProto{}
	if err := sub.readValueInfo(&vi); err != nil {
		return err
	}
	*infos = append(*infos, vi)
	return nil
}

//nolint:gocyclo // field-by-field protobuf switch
func (d *decoder) readNode(m *NodeProto) error {
	for d.pos < len(d.data) {
		fieldNum, wireType, err := d.readTag()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}

		switch fieldNum {
		case 1: // input
			var s string
			if s, err = d.readString(); err == nil {
				m.Inputs = append(m.Inputs, s)
			}
		case 2: // output
			var s string
			if s, err = d.readString(); err == nil {
				m.Outputs = append(m.Outputs, s)
			}
		case 3: // name
			m.Name, err = d.readString()
		case 4: // op_type
			m.OpType, err = d.readString()
		case 5: // attribute
			var sub *decoder
			if sub, err = d.sub(); err == nil {
				attr := AttributeProto{}
				if err = sub.readAttribute(&attr); err == nil {
					m.Attributes = append(m.Attributes, attr)
				}
			}
		case 7: // domain
			m.Domain, err = d.readString()
		default:
			err = d.skipField(wireType)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

//nolint:gocyclo // field-by-field protobuf switch
func (d *decoder) readTensor(m *TensorProto) error {
	for d.pos < len(d.data) {
		fieldNum, wireType, err := d.readTag()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}

		switch fieldNum {
		case 1: // dims (repeated int64, possibly packed)
			err = d.readInt64s(wireType, &m.Dims)
		case 2: // data_type
			m.DataType, err = d.readInt32()
		case 4: // float_data (packed)
			var data []byte
			if data, err = d.readBytes(); err == nil {
				for i := 0; i+4 <= len(data); i += 4 {
					bits := binary.LittleEndian.Uint32(data[i:])
					m.FloatData = append(m.FloatData, math.Float32frombits(bits))
				}
			}
		case 7: // int64_data (packed)
			err = d.readInt64s(wireType, &m.Int64Data)
		case 8: // name
			m.Name, err = d.readString()
		case 9: // raw_data
			m.RawData, err = d.readBytes()
		default:
			err = d.skipField(wireType)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// readValueInfo flattens the ValueInfo → Type → TensorType → Shape
// message chain into the flat ValueInfoProto this package keeps.
func (d *decoder) readValueInfo(m *ValueInfoProto) error {
	for d.pos < len(d.data) {
		fieldNum, wireType, err := d.readTag()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}

		switch fieldNum {
		case 1: // name
			m.Name, err = d.readString()
		case 2: // type
			var sub *decoder
			if sub, err = d.sub(); err == nil {
				err = sub.readType(m)
			}
		default:
			err = d.skipField(wireType)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) readType(m *ValueInfoProto) error {
	for d.pos < len(d.data) {
		fieldNum, wireType, err := d.readTag()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}

		if fieldNum == 1 { // tensor_type
			sub, err := d.sub()
			if err != nil {
				return err
			}
			if err := sub.readTensorType(m); err != nil {
				return err
			}
			continue
		}
		if err := d.skipField(wireType); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) readTensorType(m *ValueInfoProto) error {
	for d.pos < len(d.data) {
		fieldNum, wireType, err := d.readTag()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}

		switch fieldNum {
		case 1: // elem_type
			m.ElemType, err = d.readInt32()
		case 2: // shape
			var sub *decoder
			if sub, err = d.sub(); err == nil {
				err = sub.readShape(m)
			}
		default:
			err = d.skipField(wireType)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) readShape(m *ValueInfoProto) error {
	for d.pos < len(d.data) {
		fieldNum, wireType, err := d.readTag()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}

		if fieldNum == 1 { // dim
			sub, err := d.sub()
			if err != nil {
				return err
			}
			dim, err := sub.readDimension()
			if err != nil {
				return err
			}
			m.Dims = append(m.Dims, dim)
			continue
		}
		if err := d.skipField(wireType); err != nil {
			return err
		}
	}
	return nil
}

// readDimension returns the dimension extent, -1 for symbolic dims.
func (d *decoder) readDimension() (int64, error) {
	value := int64(-1)
	for d.pos < len(d.data) {
		fieldNum, wireType, err := d.readTag()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return 0, err
		}

		switch fieldNum {
		case 1: // dim_value
			value, err = d.readVarint()
		case 2: // dim_param (symbolic)
			_, err = d.readBytes()
			value = -1
		default:
			err = d.skipField(wireType)
		}
		if err != nil {
			return 0, err
		}
	}
	return value, nil
}

//nolint:gocognit,gocyclo // field-by-field protobuf switch
func (d *decoder) readAttribute(m *AttributeProto) error {
	for d.pos < len(d.data) {
		fieldNum, wireType, err := d.readTag()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}

		switch fieldNum {
		case 1: // name
			m.Name, err = d.readString()
		case 2: // f
			m.F, err = d.readFloat32()
		case 3: // i
			m.I, err = d.readVarint()
		case 4: // s
			m.S, err = d.readBytes()
		case 5: // t
			var sub *decoder
			if sub, err = d.sub(); err == nil {
				m.T = &TensorProto{}
				err = sub.readTensor(m.T)
			}
		case 6: // g
			var sub *decoder
			if sub, err = d.sub(); err == nil {
				m.G = &GraphProto{}
				err = sub.readGraph(m.G)
			}
		case 7: // floats (packed)
			var data []byte
			if data, err = d.readBytes(); err == nil {
				for i := 0; i+4 <= len(data); i += 4 {
					bits := binary.LittleEndian.Uint32(data[i:])
					m.Floats = append(m.Floats, math.Float32frombits(bits))
				}
			}
		case 8: // ints
			err = d.readInt64s(wireType, &m.Ints)
		case 9: // strings
			var data []byte
			if data, err = d.readBytes(); err == nil {
				m.Strings = append(m.Strings, data)
			}
		case 10: // tensors
			var sub *decoder
			if sub, err = d.sub(); err == nil {
				tensor := TensorProto{}
				if err = sub.readTensor(&tensor); err == nil {
					m.Tensors = append(m.Tensors, tensor)
				}
			}
		case 11: // graphs
			var sub *decoder
			if sub, err = d.sub(); err == nil {
				graph := GraphProto{}
				if err = sub.readGraph(&graph); err == nil {
					m.Graphs = append(m.Graphs, graph)
				}
			}
		case 20: // type
			m.Type, err = d.readInt32()
		default:
			err = d.skipField(wireType)
		}
		if err != nil {
			return err
		}
	}
	if m.Type == 0 {
		m.Type = inferAttrType(m)
	}
	return nil
}

func (d *decoder) readOperatorSetID(m *OperatorSetID) error {
	for d.pos < len(d.data) {
		fieldNum, wireType, err := d.readTag()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}

		switch fieldNum {
		case 1: // domain
			m.Domain, err = d.readString()
		case 2: // version
			m.Version, err = d.readVarint()
		default:
			err = d.skipField(wireType)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// readInt64s reads a repeated int64 field, packed or not.
func (d *decoder) readInt64s(wireType int, out *[]int64) error {
	if wireType == wireBytes {
		data, err := d.readBytes()
		if err != nil {
			return err
		}
		sub := &decoder{data: data}
		for sub.pos < len(sub.data) {
			v, err := sub.readVarint()
			if err != nil {
				return err
			}
			*out = append(*out, v)
		}
		return nil
	}
	v, err := d.readVarint()
	if err != nil {
		return err
	}
	*out = append(*out, v)
	return nil
}

// readTag reads a protobuf field tag.
func (d *decoder) readTag() (fieldNum, wireType int, err error) {
	if d.pos >= len(d.data) {
		return 0, 0, io.EOF
	}
	tag, err := d.readVarint()
	if err != nil {
		return 0, 0, err
	}
	fieldNum = int(tag >> 3)
	wireType = int(tag & 0x7)
	return fieldNum, wireType, nil
}

// readVarint reads a varint-encoded int64.
func (d *decoder) readVarint() (int64, error) {
	var result uint64
	var shift uint
	for {
		if d.pos >= len(d.data) {
			return 0, io.EOF
		}
		b := d.data[d.pos]
		d.pos++
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			break
		}
		shift += 7
		if shift >= 64 {
			return 0, errors.New("varint overflow")
		}
	}
	return int64(result), nil //nolint:gosec // protobuf varint fits in int64
}

// readInt32 reads a varint-encoded int32.
func (d *decoder) readInt32() (int32, error) {
	v, err := d.readVarint()
	if err != nil {
		return 0, err
	}
	return int32(v), nil //nolint:gosec // protobuf enum fits in int32
}

// readBytes reads a length-delimited byte slice.
func (d *decoder) readBytes() ([]byte, error) {
	length, err := d.readVarint()
	if err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, errors.New("negative length")
	}
	end := d.pos + int(length)
	if end > len(d.data) {
		return nil, io.ErrUnexpectedEOF
	}
	result := d.data[d.pos:end]
	d.pos = end
	return result, nil
}

// readString reads a length-delimited string.
func (d *decoder) readString() (string, error) {
	data, err := d.readBytes()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// readFloat32 reads a 32-bit float.
func (d *decoder) readFloat32() (float32, error) {
	if d.pos+4 > len(d.data) {
		return 0, io.ErrUnexpectedEOF
	}
	bits := binary.LittleEndian.Uint32(d.data[d.pos:])
	d.pos += 4
	return math.Float32frombits(bits), nil
}

// skipField skips a field based on wire type.
func (d *decoder) skipField(wireType int) error {
	switch wireType {
	case wireVarint:
		_, err := d.readVarint()
		return err
	case wire64Bit:
		if d.pos+8 > len(d.data) {
			return io.ErrUnexpectedEOF
		}
		d.pos += 8
		return nil
	case wireBytes:
		_, err := d.readBytes()
		return err
	case wire32Bit:
		if d.pos+4 > len(d.data) {
			return io.ErrUnexpectedEOF
		}
		d.pos += 4
		return nil
	default:
		return fmt.Errorf("unknown wire type: %d", wireType)
	}
}

// inferAttrType guesses the attribute type for legacy writers that omit
// the type field.
func inferAttrType(m *AttributeProto) int32 {
	switch {
	case m.T != nil:
		return 4
	case m.G != nil:
		return 5
	case len(m.Floats) > 0:
		return 6
	case len(m.Ints) > 0:
		return 7
	case len(m.Strings) > 0:
		return 8
	case len(m.Tensors) > 0:
		return 9
	case len(m.Graphs) > 0:
		return 10
	case len(m.S) > 0:
		return 3
	case m.I != 0:
		return 2
	case m.F != 0:
		return 1
	default:
		return 0
	}
}
