// Package fuzztests houses Go fuzz harnesses for the tidy front end
// (source -> lexer -> engine -> tree builder). They guard against panics,
// hangs and broken invariants on arbitrary input.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер и парсер,
// проверяя инварианты из internal/testkit.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
