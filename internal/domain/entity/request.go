package entity

// DetectRequest входные данные запроса на фильтрацию
type DetectRequest struct {
	ImageB64            string      // изображение в base64
	Detections          []Detection // области, найденные вызывающей стороной
	ApplyPrivacyFilters bool        // нужно ли строить отфильтрованную копию
	PrivacyMode         FilterMode  // один режим на весь запрос
}

// DetectResult итог обработки запроса.
type DetectResult struct {
	TsMs           int64       // время формирования ответа, мс
	DetectionCount int         // число детекций в запросе
	Detections     []Detection // детекции без изменений
	FilteredImage  []byte      // JPEG; nil, если фильтры выключены
}
