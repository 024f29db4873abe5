// Package fuzztests houses Go fuzz harnesses for the region normalizer
// pipeline (source -> lexer -> parser -> normalize -> print). They guard
// against panics, hangs and printer output that does not read back.
//
// Назначение: загрузить байты в FileSet, прогнать лексер, парсер и
// нормализатор, проверить инварианты спанов и идемпотентность.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
