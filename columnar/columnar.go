// Package columnar converts a row-oriented slice of Records into a
// dictionary-encoded, Snappy-compressed columnar file, following the
// builder → array → table → writer pipeline of §4.6.
package columnar

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/NikhilTalatule/MarketStream-ETL/models"
)

var dictType = &arrow.DictionaryType{
	IndexType: arrow.PrimitiveTypes.Int8,
	ValueType: arrow.BinaryTypes.String,
}

// Schema is the columnar schema for a trades file: fixed-width columns plus
// dictionary-encoded low-cardinality text columns (symbol, side, type).
var Schema = arrow.NewSchema([]arrow.Field{
	{Name: "trade_id", Type: arrow.PrimitiveTypes.Uint64},
	{Name: "order_id", Type: arrow.PrimitiveTypes.Uint64},
	{Name: "timestamp", Type: arrow.PrimitiveTypes.Int64},
	{Name: "symbol", Type: dictType},
	{Name: "price", Type: arrow.PrimitiveTypes.Float64},
	{Name: "volume", Type: arrow.PrimitiveTypes.Uint32},
	{Name: "side", Type: dictType},
	{Name: "type", Type: dictType},
	{Name: "is_pro", Type: arrow.FixedWidthTypes.Boolean},
}, nil)

// stringDictBuilder narrows array.DictionaryBuilder down to the single
// method this package needs; the concrete builder arrow-go hands back for
// a utf8-valued dictionary type satisfies it.
type stringDictBuilder interface {
	array.Builder
	AppendString(string) error
}

// OutputPath derives the timestamped destination filename the writer uses,
// trades_YYYYMMDD_HHMMSS.parquet under dir.
func OutputPath(dir string, at time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("trades_%s.parquet", at.Format("20060102_150405")))
}

// Write stages records into the columnar schema and writes a single-row-group,
// Snappy-compressed, schema-embedded Parquet file to path.
func Write(records []models.Record, path string) error {
	pool := memory.NewGoAllocator()
	n := len(records)

	tradeIDB := array.NewUint64Builder(pool)
	orderIDB := array.NewUint64Builder(pool)
	timestampB := array.NewInt64Builder(pool)
	priceB := array.NewFloat64Builder(pool)
	volumeB := array.NewUint32Builder(pool)
	isProB := array.NewBooleanBuilder(pool)
	defer tradeIDB.Release()
	defer orderIDB.Release()
	defer timestampB.Release()
	defer priceB.Release()
	defer volumeB.Release()
	defer isProB.Release()

	symbolB := array.NewDictionaryBuilder(pool, dictType).(stringDictBuilder)
	sideB := array.NewDictionaryBuilder(pool, dictType).(stringDictBuilder)
	typeB := array.NewDictionaryBuilder(pool, dictType).(stringDictBuilder)
	defer symbolB.Release()
	defer sideB.Release()
	defer typeB.Release()

	tradeIDB.Reserve(n)
	orderIDB.Reserve(n)
	timestampB.Reserve(n)
	priceB.Reserve(n)
	volumeB.Reserve(n)
	isProB.Reserve(n)

	for _, r := range records {
		tradeIDB.UnsafeAppend(r.TradeID)
		orderIDB.UnsafeAppend(r.OrderID)
		timestampB.UnsafeAppend(r.Timestamp)
		priceB.UnsafeAppend(r.Price)
		volumeB.UnsafeAppend(r.Volume)
		isProB.UnsafeAppend(r.IsPro)

		if err := symbolB.AppendString(r.Symbol); err != nil {
			return fmt.Errorf("columnar: encode symbol %q: %w", r.Symbol, err)
		}
		if err := sideB.AppendString(string(r.Side)); err != nil {
			return fmt.Errorf("columnar: encode side %q: %w", string(r.Side), err)
		}
		if err := typeB.AppendString(string(r.Type)); err != nil {
			return fmt.Errorf("columnar: encode type %q: %w", string(r.Type), err)
		}
	}

	cols := []arrow.Array{
		tradeIDB.NewArray(), orderIDB.NewArray(), timestampB.NewArray(),
		symbolB.NewArray(), priceB.NewArray(), volumeB.NewArray(),
		sideB.NewArray(), typeB.NewArray(), isProB.NewArray(),
	}
	for _, c := range cols {
		defer c.Release()
	}

	record := array.NewRecord(Schema, cols, int64(n))
	defer record.Release()

	table := array.NewTableFromRecords(Schema, []arrow.Record{record})
	defer table.Release()

	return writeParquet(table, path, int64(n))
}

func writeParquet(table arrow.Table, path string, rowGroupSize int64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("columnar: open %q: %w", path, err)
	}

	writerProps := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	if rowGroupSize <= 0 {
		rowGroupSize = 1
	}

	if err := writeAndClose(f, table, rowGroupSize, writerProps, arrowProps); err != nil {
		f.Close()
		return err
	}
	return nil
}

func writeAndClose(w io.Writer, table arrow.Table, rowGroupSize int64, writerProps *parquet.WriterProperties, arrowProps pqarrow.ArrowWriterProperties) error {
	if err := pqarrow.WriteTable(table, w, rowGroupSize, writerProps, arrowProps); err != nil {
		return fmt.Errorf("columnar: encode table: %w", err)
	}
	return nil
}
