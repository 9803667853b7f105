package location

// gazetteer lists provinces and mission airfields in a fixed order. Ties in
// leftmost matching go to the earlier entry.
var gazetteer = []Place{
	{Name: "กรุงเทพมหานคร", Lat: 13.9126, Lon: 100.6068},
	{Name: "กระบี่", Lat: 8.0993, Lon: 98.9786},
	{Name: "กาญจนบุรี", Lat: 14.0039, Lon: 99.5501},
	{Name: "กาฬสินธุ์", Lat: 16.4380, Lon: 103.5060},
	{Name: "กำแพงเพชร", Lat: 16.4828, Lon: 99.5220},
	{Name: "ขอนแก่น", Lat: 16.4666, Lon: 102.7836},
	{Name: "จันทบุรี", Lat: 12.6180, Lon: 102.1063},
	{Name: "ฉะเชิงเทรา", Lat: 13.6904, Lon: 101.0779},
	{Name: "ชลบุรี", Lat: 12.6799, Lon: 101.0046},
	{Name: "ชัยนาท", Lat: 15.1856, Lon: 100.1250},
	{Name: "ชัยภูมิ", Lat: 15.8052, Lon: 102.0310},
	{Name: "ชุมพร", Lat: 10.7112, Lon: 99.3616},
	{Name: "เชียงราย", Lat: 19.9553, Lon: 99.8829},
	{Name: "เชียงใหม่", Lat: 18.7666, Lon: 98.9620},
	{Name: "ตรัง", Lat: 7.5086, Lon: 99.6166},
	{Name: "ตราด", Lat: 12.2746, Lon: 102.3190},
	{Name: "ตาก", Lat: 16.8961, Lon: 99.2530},
	{Name: "นครนายก", Lat: 14.0859, Lon: 101.2311},
	{Name: "นครปฐม", Lat: 13.8198, Lon: 100.0401},
	{Name: "นครพนม", Lat: 17.3973, Lon: 104.7754},
	{Name: "นครราชสีมา", Lat: 14.9498, Lon: 102.3130},
	{Name: "นครศรีธรรมราช", Lat: 8.5396, Lon: 99.9447},
	{Name: "นครสวรรค์", Lat: 15.7112, Lon: 100.1153},
	{Name: "นนทบุรี", Lat: 13.9074, Lon: 100.5211},
	{Name: "นราธิวาส", Lat: 6.5206, Lon: 101.7431},
	{Name: "น่าน", Lat: 18.7727, Lon: 100.7857},
	{Name: "บึงกาฬ", Lat: 18.4462, Lon: 103.0605},
	{Name: "บุรีรัมย์", Lat: 15.2295, Lon: 103.2532},
	{Name: "ปทุมธานี", Lat: 14.0011, Lon: 100.5159},
	{Name: "ประจวบคีรีขันธ์", Lat: 11.7886, Lon: 99.7989},
	{Name: "ปราจีนบุรี", Lat: 13.9385, Lon: 101.4190},
	{Name: "ปัตตานี", Lat: 6.8670, Lon: 101.2500},
	{Name: "พระนครศรีอยุธยา", Lat: 14.3550, Lon: 100.5663},
	{Name: "พังงา", Lat: 8.4225, Lon: 98.4878},
	{Name: "พัทลุง", Lat: 7.6164, Lon: 100.0772},
	{Name: "พิจิตร", Lat: 16.4480, Lon: 100.3530},
	{Name: "พิษณุโลก", Lat: 16.7829, Lon: 100.2789},
	{Name: "เพชรบุรี", Lat: 12.9687, Lon: 99.9573},
	{Name: "เพชรบูรณ์", Lat: 16.6762, Lon: 101.1945},
	{Name: "แพร่", Lat: 18.1322, Lon: 100.1657},
	{Name: "มหาสารคาม", Lat: 15.3836, Lon: 103.2956},
	{Name: "มุกดาหาร", Lat: 16.5400, Lon: 104.7107},
	{Name: "แม่ฮ่องสอน", Lat: 19.3013, Lon: 97.9750},
	{Name: "ยะลา", Lat: 6.5510, Lon: 101.2855},
	{Name: "ยโสธร", Lat: 15.7921, Lon: 104.1452},
	{Name: "ร้อยเอ็ด", Lat: 16.1164, Lon: 103.7736},
	{Name: "ระนอง", Lat: 9.7776, Lon: 98.5855},
	{Name: "ระยอง", Lat: 12.6799, Lon: 101.0046},
	{Name: "ราชบุรี", Lat: 13.5427, Lon: 99.8151},
	{Name: "ลพบุรี", Lat: 14.8027, Lon: 100.6116},
	{Name: "ลำปาง", Lat: 18.2726, Lon: 99.5042},
	{Name: "ลำพูน", Lat: 18.5785, Lon: 98.5314},
	{Name: "ศรีสะเกษ", Lat: 15.1228, Lon: 104.3245},
	{Name: "สกลนคร", Lat: 17.1960, Lon: 104.1185},
	{Name: "สงขลา", Lat: 6.9320, Lon: 100.3927},
	{Name: "สมุทรปราการ", Lat: 13.6894, Lon: 100.7500},
	{Name: "สมุทรสงคราม", Lat: 13.4149, Lon: 99.9803},
	{Name: "สมุทรสาคร", Lat: 13.5659, Lon: 100.2833},
	{Name: "สระแก้ว", Lat: 13.8251, Lon: 102.0691},
	{Name: "สระบุรี", Lat: 14.5313, Lon: 100.8839},
	{Name: "สิงห์บุรี", Lat: 14.8920, Lon: 100.3960},
	{Name: "สุโขทัย", Lat: 17.2380, Lon: 99.8181},
	{Name: "สุพรรณบุรี", Lat: 14.4696, Lon: 100.1135},
	{Name: "สุราษฎร์ธานี", Lat: 9.1326, Lon: 99.1356},
	{Name: "สุรินทร์", Lat: 14.8683, Lon: 103.4983},
	{Name: "หนองคาย", Lat: 17.8707, Lon: 102.7415},
	{Name: "หนองบัวลำภู", Lat: 17.2137, Lon: 102.4067},
	{Name: "อำนาจเจริญ", Lat: 15.8692, Lon: 104.6513},
	{Name: "อุดรธานี", Lat: 17.3869, Lon: 102.7883},
	{Name: "อุตรดิตถ์", Lat: 17.6317, Lon: 100.0950},
	{Name: "อุทัยธานี", Lat: 15.3796, Lon: 99.9066},
	{Name: "สนามบินคลองหลวง", Lat: 14.11994317780348, Lon: 100.62058030298614},
	{Name: "ฝนหลวง", Lat: 14.11994317780348, Lon: 100.62058030298614},
	{Name: "Bangkok", Lat: 13.9126, Lon: 100.6068},
}
