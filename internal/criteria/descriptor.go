package criteria

// Operation определяет способ сравнения значения поля с атрибутом.
type Operation int

const (
	OpEqual Operation = iota // прямое равенство
	OpLike                   // регистронезависимое вхождение подстроки
)

// Kind — вид намерения (intent) поля дескриптора.
type Kind int

const (
	// KindNone — поле без явного намерения; при извлечении формы
	// нормализуется в KindPath по собственному имени поля с OpEqual.
	KindNone Kind = iota
	// KindTerm — текстовый поиск по нескольким путям, OR между путями.
	KindTerm
	// KindRange — сравнение по диапазону (between / >= / <=).
	KindRange
	// KindPath — одиночный путь: равенство, вхождение или членство в списке.
	KindPath
)

// Descriptor реализуют типы критериев поиска. SearchFields объявляет
// статическую разметку полей: она не зависит от конкретного экземпляра
// и вызывается один раз на форму (см. shape.go).
type Descriptor interface {
	SearchFields() []Field
}

// Range — диапазон для KindRange. Обе границы опциональны: nil-граница
// превращает between в одностороннее сравнение, два nil не дают предиката.
type Range struct {
	From any `json:"from"`
	To   any `json:"to"`
}

// Accessor читает текущее значение поля из экземпляра дескриптора.
// Обычно это замыкание с type assertion на конкретный тип критериев.
type Accessor func(d Descriptor) any

// Field — запись намерения одного поля дескриптора: имя, вид, пути
// через граф сущностей, операция сравнения и аксессор значения.
type Field struct {
	Name  string
	Kind  Kind
	Paths []string
	Op    Operation
	Get   Accessor
}

// Term объявляет поле текстового поиска по нескольким путям (OR между ними).
// Операция по умолчанию — OpLike.
func Term(name string, paths []string, get Accessor) Field {
	return Field{Name: name, Kind: KindTerm, Paths: paths, Op: OpLike, Get: get}
}

// Ranged объявляет поле-диапазон над одним путём. Значение поля должно
// быть *Range (nil пропускается целиком).
func Ranged(name, path string, get Accessor) Field {
	return Field{Name: name, Kind: KindRange, Paths: []string{path}, Op: OpEqual, Get: get}
}

// Path объявляет поле с одиночным путём и равенством. Срез в качестве
// значения компилируется в членство (IN).
func Path(name, path string, get Accessor) Field {
	return Field{Name: name, Kind: KindPath, Paths: []string{path}, Op: OpEqual, Get: get}
}

// PathLike — как Path, но для текстовых значений строит регистронезависимое
// вхождение. Для нетекстовых значений операция понижается до равенства.
func PathLike(name, path string, get Accessor) Field {
	return Field{Name: name, Kind: KindPath, Paths: []string{path}, Op: OpLike, Get: get}
}

// Plain объявляет поле без явного намерения: путь — собственное имя поля,
// операция — равенство. Явная форма ветки по умолчанию.
func Plain(name string, get Accessor) Field {
	return Field{Name: name, Get: get}
}

// WithOp возвращает копию поля с переопределённой операцией
// (например Term с точным равенством вместо вхождения).
func (f Field) WithOp(op Operation) Field {
	f.Op = op
	return f
}
